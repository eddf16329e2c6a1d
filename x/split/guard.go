package split

import (
	"sync"

	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/errors"
)

// latch rejects reentrant withdrawal calls per caller. Execution is
// sequential, but any funds transfer is a potential re-entry point: the
// account being paid could call back into the engine before the transfer
// returns. The latch is held for the duration of a withdrawal and only
// blocks the same caller, other callers are unaffected.
//
// The latch is in-process state. It does not need to be persisted because
// a latch can only be observed as held within the synchronous call stack
// of the withdrawal that acquired it.
type latch struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func newLatch() *latch {
	return &latch{
		busy: make(map[string]struct{}),
	}
}

// acquire marks the caller as withdrawing. It fails with ErrReentrancy,
// before any state is touched, when the caller already holds the latch.
func (l *latch) acquire(caller paysplit.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.busy[string(caller)]; ok {
		return errors.Wrapf(ErrReentrancy, "caller %s", caller)
	}
	l.busy[string(caller)] = struct{}{}
	return nil
}

// release frees the latch. Must be called on every exit path, including
// after internal failures.
func (l *latch) release(caller paysplit.Address) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.busy, string(caller))
}
