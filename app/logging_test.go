package app

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/v-stickykeys/paysplit/errors"
	"github.com/v-stickykeys/paysplit/paytest"
	"github.com/v-stickykeys/paysplit/paytest/assert"
	"github.com/v-stickykeys/paysplit/store"
)

func TestLoggingReportsOutcome(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	next := &paytest.Handler{}
	h := WithLogging(logger, next)

	tx := &paytest.Tx{Msg: &routedMsg{path: "some/path"}}
	_, err := h.Deliver(context.Background(), store.MemStore(), tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, next.DeliverCallCount())

	entries := logs.TakeAll()
	assert.Equal(t, 1, len(entries))
	assert.Equal(t, "deliver ok", entries[0].Message)
	assert.Equal(t, "some/path", entries[0].ContextMap()["path"])
}

func TestLoggingReportsFailure(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	next := &paytest.Handler{
		CheckErr: errors.Wrap(errors.ErrState, "broken"),
	}
	h := WithLogging(logger, next)

	tx := &paytest.Tx{Msg: &routedMsg{path: "some/path"}}
	_, err := h.Check(context.Background(), store.MemStore(), tx)
	assert.IsErr(t, errors.ErrState, err)

	entries := logs.TakeAll()
	assert.Equal(t, 1, len(entries))
	assert.Equal(t, "check failed", entries[0].Message)
}
