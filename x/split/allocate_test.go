package split

import (
	"testing"

	"github.com/v-stickykeys/paysplit/errors"
	"github.com/v-stickykeys/paysplit/paytest"
	"github.com/v-stickykeys/paysplit/paytest/assert"
	"github.com/v-stickykeys/paysplit/store"
)

// fourWay returns a recipient set with shares 30, 10, 6 and 54.
func fourWay() []*Recipient {
	return []*Recipient{
		{Address: paytest.NewAddress(), Share: 30},
		{Address: paytest.NewAddress(), Share: 10},
		{Address: paytest.NewAddress(), Share: 6},
		{Address: paytest.NewAddress(), Share: 54},
	}
}

func TestAllocateEvenDeposit(t *testing.T) {
	db := store.MemStore()
	id := paytest.SequenceID(1)
	rs := fourWay()

	payouts, err := allocate(db, id, rs, 100)
	assert.Nil(t, err)

	wantAmounts := []int64{30, 10, 6, 54}
	assert.Equal(t, len(rs), len(payouts))
	for i, p := range payouts {
		assert.Equal(t, rs[i].Address, p.recipient)
		assert.Equal(t, wantAmounts[i], p.amount)

		change, err := ChangeOf(db, id, rs[i].Address)
		assert.Nil(t, err)
		assert.Equal(t, int64(0), change)
	}
}

func TestAllocateCarriesChange(t *testing.T) {
	db := store.MemStore()
	id := paytest.SequenceID(1)
	rs := fourWay()

	// A deposit of 10 leaves the 6% and 54% shares with a fractional
	// remainder that cannot be paid out yet.
	payouts, err := allocate(db, id, rs, 10)
	assert.Nil(t, err)

	wantAmounts := []int64{3, 1, 0, 5}
	wantChange := []int64{0, 0, 60, 40}
	for i, p := range payouts {
		assert.Equal(t, wantAmounts[i], p.amount)

		change, err := ChangeOf(db, id, rs[i].Address)
		assert.Nil(t, err)
		assert.Equal(t, wantChange[i], change)
	}
}

func TestAllocateChangeCrossesWholeUnit(t *testing.T) {
	db := store.MemStore()
	id := paytest.SequenceID(1)
	rs := fourWay()

	_, err := allocate(db, id, rs, 10)
	assert.Nil(t, err)

	// The second deposit pushes the 6% share's change from 60 to 120
	// hundredths, releasing one whole unit.
	payouts, err := allocate(db, id, rs, 10)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), payouts[2].amount)

	change, err := ChangeOf(db, id, rs[2].Address)
	assert.Nil(t, err)
	assert.Equal(t, int64(20), change)
}

func TestAllocateConservesValue(t *testing.T) {
	db := store.MemStore()
	id := paytest.SequenceID(1)
	rs := fourWay()

	// Every deposited hundredth must end up either paid out or in the
	// change, regardless of the amount.
	var deposited, paid int64
	for _, amount := range []int64{1, 2, 3, 7, 10, 99, 100, 101, 1234567} {
		payouts, err := allocate(db, id, rs, amount)
		assert.Nil(t, err)
		deposited += amount
		for _, p := range payouts {
			paid += p.amount
		}

		var change int64
		for _, r := range rs {
			c, err := ChangeOf(db, id, r.Address)
			assert.Nil(t, err)
			change += c
		}
		assert.Equal(t, deposited*100, paid*100+change)
	}
}

func TestAllocateRejectsBadAmounts(t *testing.T) {
	db := store.MemStore()
	id := paytest.SequenceID(1)
	rs := fourWay()

	_, err := allocate(db, id, rs, 0)
	assert.IsErr(t, errors.ErrAmount, err)

	_, err = allocate(db, id, rs, -4)
	assert.IsErr(t, errors.ErrAmount, err)

	_, err = allocate(db, id, rs, maxDeposit+1)
	assert.IsErr(t, errors.ErrOverflow, err)

	// The biggest allowed deposit must not overflow for a full share.
	single := []*Recipient{{Address: paytest.NewAddress(), Share: 100}}
	payouts, err := allocate(db, id, single, maxDeposit)
	assert.Nil(t, err)
	assert.Equal(t, int64(maxDeposit), payouts[0].amount)
}

func TestAllocateDuplicateAddressSharesChange(t *testing.T) {
	db := store.MemStore()
	id := paytest.SequenceID(1)
	addr := paytest.NewAddress()
	rs := []*Recipient{
		{Address: addr, Share: 30},
		{Address: addr, Share: 30},
		{Address: paytest.NewAddress(), Share: 40},
	}

	// Both declarations write to the same change counter: 30% of 1 is
	// 30 hundredths, accumulated twice within a single deposit.
	payouts, err := allocate(db, id, rs, 1)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), payouts[0].amount)
	assert.Equal(t, int64(0), payouts[1].amount)

	change, err := ChangeOf(db, id, addr)
	assert.Nil(t, err)
	assert.Equal(t, int64(60), change)
}

func TestAddBalance(t *testing.T) {
	db := store.MemStore()
	id := paytest.SequenceID(1)
	addr := paytest.NewAddress()

	assert.Nil(t, addBalance(db, id, addr, 5))
	assert.Nil(t, addBalance(db, id, addr, 7))

	owed, err := BalanceOf(db, id, addr)
	assert.Nil(t, err)
	assert.Equal(t, int64(12), owed)
}

func TestTotalsOf(t *testing.T) {
	db := store.MemStore()
	addr := paytest.NewAddress()
	id, err := createSplitter(db, &Splitter{
		Recipients: []*Recipient{
			{Address: addr, Share: 30},
			{Address: addr, Share: 30},
			{Address: paytest.NewAddress(), Share: 40},
		},
	})
	assert.Nil(t, err)

	assert.Nil(t, addBalance(db, id, addr, 9))
	assert.Nil(t, setChange(db, id, addr, 55))

	// The duplicated address is counted once.
	totals, err := TotalsOf(db, id)
	assert.Nil(t, err)
	assert.Equal(t, int64(9), totals.Owed)
	assert.Equal(t, int64(55), totals.Change)
}

func TestCounterRoundTrip(t *testing.T) {
	db := store.MemStore()
	key := []byte("counter")

	val, err := loadCounter(db, key)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), val)

	assert.Nil(t, storeCounter(db, key, 99))
	val, err = loadCounter(db, key)
	assert.Nil(t, err)
	assert.Equal(t, int64(99), val)

	// Zero removes the entry instead of storing an empty counter.
	assert.Nil(t, storeCounter(db, key, 0))
	has, err := db.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, false, has)
}
