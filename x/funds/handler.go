package funds

import (
	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/errors"
	"github.com/v-stickykeys/paysplit/x"
)

const sendCost = 100

// RegisterRoutes registers handlers for wallet message processing.
func RegisterRoutes(r paysplit.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathSendMsg, &sendHandler{
		auth: auth,
		ctrl: ctrl,
	})
}

type sendHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ paysplit.Handler = (*sendHandler)(nil)

func (h *sendHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{GasAllocated: sendCost}, nil
}

func (h *sendHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MoveFunds(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "cannot move funds")
	}
	return &paysplit.DeliverResult{}, nil
}

func (h *sendHandler) validate(ctx paysplit.Context, tx paysplit.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if len(msg.Source) == 0 {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
		}
		msg.Source = signer.Address()
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source not signed")
	}
	return &msg, nil
}
