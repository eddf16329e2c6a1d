package funds

import (
	"math"
	"testing"

	"github.com/v-stickykeys/paysplit/errors"
	"github.com/v-stickykeys/paysplit/paytest"
	"github.com/v-stickykeys/paysplit/paytest/assert"
	"github.com/v-stickykeys/paysplit/store"
)

func TestBalanceOfUnknownAccountIsZero(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()

	got, err := ctrl.Balance(db, paytest.NewAddress())
	assert.Nil(t, err)
	assert.Equal(t, int64(0), got)
}

func TestMoveFunds(t *testing.T) {
	alice := paytest.NewAddress()
	bob := paytest.NewAddress()

	cases := map[string]struct {
		setup       int64
		amount      int64
		wantErr     *errors.Error
		wantSrcLeft int64
		wantDst     int64
	}{
		"full balance moved": {
			setup:       10,
			amount:      10,
			wantSrcLeft: 0,
			wantDst:     10,
		},
		"partial balance moved": {
			setup:       10,
			amount:      3,
			wantSrcLeft: 7,
			wantDst:     3,
		},
		"insufficient funds": {
			setup:   5,
			amount:  10,
			wantErr: errors.ErrInsufficientAmount,
		},
		"zero amount": {
			setup:   5,
			amount:  0,
			wantErr: errors.ErrAmount,
		},
		"negative amount": {
			setup:   5,
			amount:  -2,
			wantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			if tc.setup > 0 {
				assert.Nil(t, ctrl.IssueFunds(db, alice, tc.setup))
			}

			err := ctrl.MoveFunds(db, alice, bob, tc.amount)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			src, err := ctrl.Balance(db, alice)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantSrcLeft, src)
			dst, err := ctrl.Balance(db, bob)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantDst, dst)
		})
	}
}

func TestMoveFundsToSelf(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	alice := paytest.NewAddress()

	assert.Nil(t, ctrl.IssueFunds(db, alice, 10))

	// Moving value onto itself must not change the balance. The debit
	// and the credit of the same account cancel out, they must not mint.
	assert.Nil(t, ctrl.MoveFunds(db, alice, alice, 5))
	got, err := ctrl.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, int64(10), got)

	// The usual funding requirement still applies.
	assert.IsErr(t, errors.ErrInsufficientAmount, ctrl.MoveFunds(db, alice, alice, 20))
}

func TestIssueFundsOverflow(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	addr := paytest.NewAddress()

	assert.Nil(t, ctrl.IssueFunds(db, addr, math.MaxInt64))
	assert.IsErr(t, errors.ErrOverflow, ctrl.IssueFunds(db, addr, 1))
}

func TestEmptiedWalletIsRemoved(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	alice := paytest.NewAddress()
	bob := paytest.NewAddress()

	assert.Nil(t, ctrl.IssueFunds(db, alice, 4))
	assert.Nil(t, ctrl.MoveFunds(db, alice, bob, 4))

	has, err := db.Has(walletKey(alice))
	assert.Nil(t, err)
	assert.Equal(t, false, has)
}
