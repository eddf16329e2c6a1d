/*
Package errors implements the error framework used across the engine.

Each returned error wraps one of the root errors declared here or
registered by an extension. Wrapping preserves the root cause so that
callers can test errors with the root's Is method instead of comparing
strings, while each layer adds context for the humans reading logs.
*/
package errors
