// Package paytest provides mocks and helpers for testing the engine and
// its extensions.
package paytest

import (
	"crypto/rand"
	"encoding/binary"
	"sync/atomic"

	paysplit "github.com/v-stickykeys/paysplit"
)

// condCnt ensures conditions created by NewCondition are unique even when
// the random source misbehaves.
var condCnt uint64

// NewCondition returns a newly created, unique condition.
func NewCondition() paysplit.Condition {
	data := make([]byte, 20)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	n := atomic.AddUint64(&condCnt, 1)
	binary.BigEndian.PutUint64(data[:8], n)
	return paysplit.NewCondition("test", "rnd", data)
}

// NewAddress returns the address of a newly created, unique condition.
func NewAddress() paysplit.Address {
	return NewCondition().Address()
}

// SequenceID returns an ID encoded the way sequence counters persist
// values. Use it to reference the n-th instance created by a handler.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
