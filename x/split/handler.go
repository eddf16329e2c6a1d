package split

import (
	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/errors"
	"github.com/v-stickykeys/paysplit/x"
)

const (
	createCost              = 0
	depositPerRecipientCost = 0
	withdrawCost            = 0
)

// FundsController allows to move value between accounts without the need
// to access the wallet storage directly. The required functionality is
// implemented by the x/funds extension.
type FundsController interface {
	MoveFunds(db paysplit.KVStore, src, dst paysplit.Address, amount int64) error
}

// Gate decides if a caller may trigger a value moving operation. Who is
// authorized and why is entirely the gate's business, the engine only
// consumes the boolean answer.
type Gate interface {
	Authorized(ctx paysplit.Context, caller paysplit.Address) bool
}

// GateFunc turns a plain function into a Gate.
type GateFunc func(ctx paysplit.Context, caller paysplit.Address) bool

func (f GateFunc) Authorized(ctx paysplit.Context, caller paysplit.Address) bool {
	return f(ctx, caller)
}

// RegisterRoutes registers handlers for splitter message processing. All
// value moving handlers share one withdrawal latch.
func RegisterRoutes(r paysplit.Registry, auth x.Authenticator, gate Gate, ctrl FundsController) {
	guard := newLatch()
	r.Handle(pathCreateMsg, &createHandler{
		auth: auth,
	})
	r.Handle(pathPushDepositMsg, &pushDepositHandler{
		auth: auth,
		gate: gate,
		ctrl: ctrl,
	})
	r.Handle(pathAccrueDepositMsg, &accrueDepositHandler{
		auth:  auth,
		gate:  gate,
		ctrl:  ctrl,
		guard: guard,
	})
	r.Handle(pathWithdrawMsg, &withdrawHandler{
		auth:  auth,
		gate:  gate,
		ctrl:  ctrl,
		guard: guard,
	})
	r.Handle(pathDisperseMsg, &disperseHandler{
		auth:  auth,
		gate:  gate,
		ctrl:  ctrl,
		guard: guard,
	})
}

type createHandler struct {
	auth x.Authenticator
}

var _ paysplit.Handler = (*createHandler)(nil)

func (h *createHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	var msg CreateMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &paysplit.CheckResult{GasAllocated: createCost}, nil
}

func (h *createHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	var msg CreateMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	id, err := createSplitter(db, &Splitter{Recipients: msg.Recipients})
	if err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{Data: id}, nil
}

type pushDepositHandler struct {
	auth x.Authenticator
	gate Gate
	ctrl FundsController
}

var _ paysplit.Handler = (*pushDepositHandler)(nil)

func (h *pushDepositHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	msg, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	s, err := loadSplitter(db, msg.SplitterID)
	if err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{
		GasAllocated: depositPerRecipientCost * int64(len(s.Recipients)),
	}, nil
}

// Deliver splits the deposit and pays every recipient inline, in
// declaration order. A failing transfer to any recipient aborts the whole
// deposit. This mode trusts every recipient to accept a transfer.
func (h *pushDepositHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	s, err := loadSplitter(db, msg.SplitterID)
	if err != nil {
		return nil, err
	}

	pool := PoolAccount(msg.SplitterID)
	err = runAtomic(db, func(db paysplit.KVStore) error {
		if err := h.ctrl.MoveFunds(db, caller, pool, msg.Amount); err != nil {
			return errors.Wrap(err, "cannot fund the pool")
		}
		// Change is persisted before any transfer happens, a reentrant
		// call during a transfer observes the updated state.
		payouts, err := allocate(db, msg.SplitterID, s.Recipients, msg.Amount)
		if err != nil {
			return err
		}
		for _, p := range payouts {
			// Too small for this deposit, the remainder stays in the pool.
			if p.amount == 0 {
				continue
			}
			if err := h.ctrl.MoveFunds(db, pool, p.recipient, p.amount); err != nil {
				return errors.Wrapf(err, "cannot pay %s", p.recipient)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{}, nil
}

func (h *pushDepositHandler) validate(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*PushDepositMsg, paysplit.Address, error) {
	var msg PushDepositMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := authorizedCaller(ctx, h.auth, h.gate)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

type accrueDepositHandler struct {
	auth  x.Authenticator
	gate  Gate
	ctrl  FundsController
	guard *latch
}

var _ paysplit.Handler = (*accrueDepositHandler)(nil)

func (h *accrueDepositHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	msg, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	s, err := loadSplitter(db, msg.SplitterID)
	if err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{
		GasAllocated: depositPerRecipientCost * int64(len(s.Recipients)),
	}, nil
}

// Deliver splits the deposit into the internal recipient balances. The
// deposited value stays in the pool until withdrawn. With the disperse
// flag the balances are drained right away in the same call.
func (h *accrueDepositHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	s, err := loadSplitter(db, msg.SplitterID)
	if err != nil {
		return nil, err
	}

	pool := PoolAccount(msg.SplitterID)
	err = runAtomic(db, func(db paysplit.KVStore) error {
		if err := h.ctrl.MoveFunds(db, caller, pool, msg.Amount); err != nil {
			return errors.Wrap(err, "cannot fund the pool")
		}
		payouts, err := allocate(db, msg.SplitterID, s.Recipients, msg.Amount)
		if err != nil {
			return err
		}
		for _, p := range payouts {
			if p.amount == 0 {
				continue
			}
			if err := addBalance(db, msg.SplitterID, p.recipient, p.amount); err != nil {
				return errors.Wrapf(err, "cannot credit %s", p.recipient)
			}
		}
		if !msg.Disperse {
			return nil
		}
		if err := h.guard.acquire(caller); err != nil {
			return err
		}
		defer h.guard.release(caller)
		return disperse(db, h.ctrl, msg.SplitterID, s.Recipients)
	})
	if err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{}, nil
}

func (h *accrueDepositHandler) validate(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*AccrueDepositMsg, paysplit.Address, error) {
	var msg AccrueDepositMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := authorizedCaller(ctx, h.auth, h.gate)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

type withdrawHandler struct {
	auth  x.Authenticator
	gate  Gate
	ctrl  FundsController
	guard *latch
}

var _ paysplit.Handler = (*withdrawHandler)(nil)

func (h *withdrawHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{GasAllocated: withdrawCost}, nil
}

// Deliver transfers the accrued balance of the recipient out of the pool.
// A zero balance succeeds without any state change so that batch
// processing cannot be blocked by an empty account.
func (h *withdrawHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.guard.acquire(caller); err != nil {
		return nil, err
	}
	defer h.guard.release(caller)

	err = runAtomic(db, func(db paysplit.KVStore) error {
		return withdrawOne(db, h.ctrl, msg.SplitterID, msg.Recipient)
	})
	if err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{}, nil
}

func (h *withdrawHandler) validate(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*WithdrawMsg, paysplit.Address, error) {
	var msg WithdrawMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := authorizedCaller(ctx, h.auth, h.gate)
	if err != nil {
		return nil, nil, err
	}
	if _, err := loadSplitter(db, msg.SplitterID); err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

type disperseHandler struct {
	auth  x.Authenticator
	gate  Gate
	ctrl  FundsController
	guard *latch
}

var _ paysplit.Handler = (*disperseHandler)(nil)

func (h *disperseHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	msg, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	s, err := loadSplitter(db, msg.SplitterID)
	if err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{
		GasAllocated: withdrawCost * int64(len(s.Recipients)),
	}, nil
}

// Deliver withdraws for every recipient in declaration order. Empty
// balances are skipped, a genuine transfer failure aborts the batch.
// Facing a stuck recipient, callers can fall back to withdrawing for the
// unaffected recipients individually.
func (h *disperseHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	s, err := loadSplitter(db, msg.SplitterID)
	if err != nil {
		return nil, err
	}

	if err := h.guard.acquire(caller); err != nil {
		return nil, err
	}
	defer h.guard.release(caller)

	err = runAtomic(db, func(db paysplit.KVStore) error {
		return disperse(db, h.ctrl, msg.SplitterID, s.Recipients)
	})
	if err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{}, nil
}

func (h *disperseHandler) validate(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*DisperseMsg, paysplit.Address, error) {
	var msg DisperseMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := authorizedCaller(ctx, h.auth, h.gate)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

// withdrawOne pays out the accrued balance of a single recipient. The
// balance is zeroed before the funds move, so a reentrant call during the
// transfer cannot double spend it.
func withdrawOne(db paysplit.KVStore, ctrl FundsController, splitterID []byte, recipient paysplit.Address) error {
	owed, err := BalanceOf(db, splitterID, recipient)
	if err != nil {
		return err
	}
	if owed == 0 {
		// Nothing to withdraw is a success, not an error.
		return nil
	}
	if err := setBalance(db, splitterID, recipient, 0); err != nil {
		return err
	}
	pool := PoolAccount(splitterID)
	return errors.Wrapf(ctrl.MoveFunds(db, pool, recipient, owed), "cannot pay %s", recipient)
}

// disperse withdraws for all recipients in declaration order.
func disperse(db paysplit.KVStore, ctrl FundsController, splitterID []byte, recipients []*Recipient) error {
	for _, r := range recipients {
		if err := withdrawOne(db, ctrl, splitterID, r.Address); err != nil {
			return err
		}
	}
	return nil
}

// authorizedCaller resolves the main signer and asks the gate for the
// verdict. It must be consulted before any state mutation.
func authorizedCaller(ctx paysplit.Context, auth x.Authenticator, gate Gate) (paysplit.Address, error) {
	signer := x.MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	caller := signer.Address()
	if !gate.Authorized(ctx, caller) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "caller %s", caller)
	}
	return caller, nil
}

// runAtomic stages all writes in a cache that is only written on success.
// When the database cannot hand out caches the function runs directly on
// it and atomicity is the caller's business.
func runAtomic(db paysplit.KVStore, fn func(paysplit.KVStore) error) error {
	cdb, ok := db.(paysplit.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cdb.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "cannot persist changes")
}
