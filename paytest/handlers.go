package paytest

import (
	paysplit "github.com/v-stickykeys/paysplit"
)

// Handler is a mock implementation of the paysplit.Handler interface,
// counting calls and returning declared results.
type Handler struct {
	checkCall   int
	deliverCall int

	CheckResult   paysplit.CheckResult
	CheckErr      error
	DeliverResult paysplit.DeliverResult
	DeliverErr    error
}

var _ paysplit.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	h.checkCall++
	return &h.CheckResult, h.CheckErr
}

func (h *Handler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	h.deliverCall++
	return &h.DeliverResult, h.DeliverErr
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
