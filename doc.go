/*
Package paysplit defines the contracts shared by all extensions of the
payment splitting engine.

The root package holds only interfaces and small value types: messages and
transactions, handlers that process them, the key-value storage family and
the address/condition primitives. Implementations live in subpackages:
store provides the storage backends, app the message routing, and the
packages under x the business logic.
*/
package paysplit
