// Package app wires messages to handlers. The router dispatches each
// transaction by its message path and the logging middleware reports every
// processed message.
package app

import (
	"fmt"
	"regexp"

	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/errors"
)

// isPath ensures path expressions are in the expected format.
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/\-]+$`).MatchString

// Router allows us to register many handlers with different paths and
// then direct each message to the registered handler.
type Router struct {
	routes map[string]paysplit.Handler
}

var _ paysplit.Registry = (*Router)(nil)
var _ paysplit.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]paysplit.Handler),
	}
}

// Handle adds a new handler for the given path. Requiring a unique,
// well-formatted path, panicking otherwise, as this is a setup time error.
func (r *Router) Handle(path string, h paysplit.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("handler for path %q is already registered", path))
	}
	r.routes[path] = h
}

// Handler returns the registered handler for this path, or a handler that
// always fails with not found.
func (r *Router) Handler(path string) paysplit.Handler {
	h, ok := r.routes[path]
	if !ok {
		return noSuchPathHandler{path: path}
	}
	return h
}

// Check dispatches the transaction by its message path.
func (r *Router) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	path := paysplit.GetPath(tx)
	return r.Handler(path).Check(ctx, db, tx)
}

// Deliver dispatches the transaction by its message path.
func (r *Router) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	path := paysplit.GetPath(tx)
	return r.Handler(path).Deliver(ctx, db, tx)
}

// noSuchPathHandler always fails with a not found error.
type noSuchPathHandler struct {
	path string
}

var _ paysplit.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(paysplit.Context, paysplit.KVStore, paysplit.Tx) (*paysplit.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}

func (h noSuchPathHandler) Deliver(paysplit.Context, paysplit.KVStore, paysplit.Tx) (*paysplit.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}
