package split

import (
	"testing"

	"github.com/v-stickykeys/paysplit/paytest"
	"github.com/v-stickykeys/paysplit/paytest/assert"
)

func TestLatchBlocksSameCaller(t *testing.T) {
	alice := paytest.NewAddress()
	l := newLatch()

	assert.Nil(t, l.acquire(alice))
	assert.IsErr(t, ErrReentrancy, l.acquire(alice))

	l.release(alice)
	assert.Nil(t, l.acquire(alice))
}

func TestLatchIsPerCaller(t *testing.T) {
	alice := paytest.NewAddress()
	bob := paytest.NewAddress()
	l := newLatch()

	assert.Nil(t, l.acquire(alice))
	assert.Nil(t, l.acquire(bob))

	l.release(bob)
	assert.IsErr(t, ErrReentrancy, l.acquire(alice))
}
