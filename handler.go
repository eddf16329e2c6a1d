package paysplit

import "encoding/json"

// Handler is a core engine that can process a few specific messages.
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type control in middleware.
type Checker interface {
	Check(ctx Context, db KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
type Deliverer interface {
	Deliver(ctx Context, db KVStore, tx Tx) (*DeliverResult, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router.
type Registry interface {
	Handle(path string, h Handler)
}

// CheckResult captures any non-error response from a check operation.
type CheckResult struct {
	// GasAllocated is a declaration of the anticipated processing cost.
	GasAllocated int64
}

// DeliverResult captures any non-error response from message delivery.
type DeliverResult struct {
	// Data is request specific. For creation requests this is the key of
	// the created entity.
	Data []byte
	Log  string
}

// Options are the application setup options. Each extension can look up
// its section and parse the raw JSON as desired.
type Options map[string]json.RawMessage

// ReadOptions parses the value stored under a given key into obj. Missing
// key is a noop, not an error.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize extensions from the
// setup options.
type Initializer interface {
	FromGenesis(opts Options, db KVStore) error
}
