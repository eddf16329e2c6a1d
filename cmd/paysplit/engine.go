package main

import (
	"encoding/binary"
	"os"

	"go.uber.org/zap"

	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/app"
	"github.com/v-stickykeys/paysplit/errors"
	"github.com/v-stickykeys/paysplit/store/bolt"
	"github.com/v-stickykeys/paysplit/x"
	"github.com/v-stickykeys/paysplit/x/funds"
	"github.com/v-stickykeys/paysplit/x/split"
)

// engine bundles an opened database with a fully wired message handler.
type engine struct {
	db      *bolt.Store
	handler paysplit.Handler
	ctrl    funds.Controller
}

// openEngine opens the database file and wires all extensions into a
// single handler. The given conditions are the signers of every processed
// transaction. Close the engine when done.
//
// Anyone in possession of the database file may move value, so the access
// gate accepts every signed caller.
func openEngine(dbPath string, signers ...paysplit.Condition) (*engine, error) {
	db, err := bolt.Open(dbPath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open database %q", dbPath)
	}

	ctrl := funds.NewController()
	auth := &cliAuth{conds: signers}
	gate := split.GateFunc(func(paysplit.Context, paysplit.Address) bool {
		return true
	})

	rt := app.NewRouter()
	funds.RegisterRoutes(rt, auth, ctrl)
	split.RegisterRoutes(rt, auth, gate, ctrl)

	return &engine{
		db:      db,
		handler: app.WithLogging(logger(), rt),
		ctrl:    ctrl,
	}, nil
}

func (e *engine) Close() error {
	return e.db.Close()
}

// logger is verbose only on demand to keep the command output parseable.
func logger() *zap.Logger {
	if os.Getenv("PAYSPLIT_VERBOSE") == "" {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// cliAuth implements the x.Authenticator interface with a fixed set of
// conditions, the way a signature verification middleware would populate
// them.
type cliAuth struct {
	conds []paysplit.Condition
}

var _ x.Authenticator = (*cliAuth)(nil)

func (a *cliAuth) GetConditions(paysplit.Context) []paysplit.Condition {
	return a.conds
}

func (a *cliAuth) HasAddress(ctx paysplit.Context, addr paysplit.Address) bool {
	for _, c := range a.conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

// userCondition derives a deterministic condition from a human friendly
// name. It stands in for a signature verification key.
func userCondition(name string) paysplit.Condition {
	return paysplit.NewCondition("cli", "user", []byte(name))
}

// splitterID encodes the decimal instance number the way the instance
// sequence persists it.
func splitterID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// cliTx wraps a single message into a transaction.
type cliTx struct {
	msg paysplit.Msg
}

var _ paysplit.Tx = (*cliTx)(nil)

func (tx *cliTx) GetMsg() (paysplit.Msg, error) {
	return tx.msg, nil
}

func (tx *cliTx) Marshal() ([]byte, error) {
	return tx.msg.Marshal()
}

func (tx *cliTx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "not implemented")
}
