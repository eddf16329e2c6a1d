package split

import (
	"testing"

	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/errors"
	"github.com/v-stickykeys/paysplit/paytest"
	"github.com/v-stickykeys/paysplit/paytest/assert"
	"github.com/v-stickykeys/paysplit/store"
)

func TestValidateRecipients(t *testing.T) {
	a := paytest.NewAddress()
	b := paytest.NewAddress()

	cases := map[string]struct {
		recipients []*Recipient
		wantErr    *errors.Error
	}{
		"single full share": {
			recipients: []*Recipient{
				{Address: a, Share: 100},
			},
		},
		"many shares summing to full": {
			recipients: []*Recipient{
				{Address: a, Share: 30},
				{Address: b, Share: 70},
			},
		},
		"no recipients": {
			recipients: nil,
			wantErr:    errors.ErrModel,
		},
		"shares do not sum to full": {
			recipients: []*Recipient{
				{Address: a, Share: 30},
				{Address: b, Share: 71},
			},
			wantErr: ErrShareSum,
		},
		"zero share": {
			recipients: []*Recipient{
				{Address: a, Share: 0},
			},
			wantErr: ErrShareRange,
		},
		"negative share": {
			recipients: []*Recipient{
				{Address: a, Share: -5},
				{Address: b, Share: 105},
			},
			wantErr: ErrShareRange,
		},
		"share above full": {
			recipients: []*Recipient{
				{Address: a, Share: 101},
			},
			wantErr: ErrShareRange,
		},
		"invalid address": {
			recipients: []*Recipient{
				{Address: []byte{0x1}, Share: 100},
			},
			wantErr: errors.ErrInput,
		},
		// Duplicates are accepted. The address simply earns twice, the
		// declared shares still sum to 100.
		"duplicated address": {
			recipients: []*Recipient{
				{Address: a, Share: 40},
				{Address: a, Share: 40},
				{Address: b, Share: 20},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := ValidateRecipients(tc.recipients, errors.ErrModel)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
		})
	}
}

func TestNewRecipients(t *testing.T) {
	a := paytest.NewAddress()
	b := paytest.NewAddress()

	rs, err := NewRecipients(
		[]paysplit.Address{a, b},
		[]int32{30, 70},
	)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(rs))
	assert.Equal(t, a, rs[0].Address)
	assert.Equal(t, int32(70), rs[1].Share)

	_, err = NewRecipients(
		[]paysplit.Address{a, b},
		[]int32{50},
	)
	assert.IsErr(t, ErrShareCount, err)
}

func TestCreateSplitterAssignsSequentialIDs(t *testing.T) {
	db := store.MemStore()
	a := paytest.NewAddress()

	first, err := createSplitter(db, &Splitter{
		Recipients: []*Recipient{{Address: a, Share: 100}},
	})
	assert.Nil(t, err)
	assert.Equal(t, paytest.SequenceID(1), first)

	second, err := createSplitter(db, &Splitter{
		Recipients: []*Recipient{{Address: a, Share: 100}},
	})
	assert.Nil(t, err)
	assert.Equal(t, paytest.SequenceID(2), second)

	s, err := loadSplitter(db, first)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(s.Recipients))
	assert.Equal(t, a, s.Recipients[0].Address)
}

func TestCreateSplitterValidates(t *testing.T) {
	db := store.MemStore()
	_, err := createSplitter(db, &Splitter{
		Recipients: []*Recipient{{Address: paytest.NewAddress(), Share: 55}},
	})
	assert.IsErr(t, ErrShareSum, err)
}

func TestLoadSplitterUnknownID(t *testing.T) {
	db := store.MemStore()
	_, err := loadSplitter(db, paytest.SequenceID(42))
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestPercentageOf(t *testing.T) {
	db := store.MemStore()
	a := paytest.NewAddress()
	b := paytest.NewAddress()

	id, err := createSplitter(db, &Splitter{
		Recipients: []*Recipient{
			{Address: a, Share: 30},
			{Address: b, Share: 70},
		},
	})
	assert.Nil(t, err)

	share, err := PercentageOf(db, id, b)
	assert.Nil(t, err)
	assert.Equal(t, int32(70), share)

	share, err = PercentageOf(db, id, paytest.NewAddress())
	assert.Nil(t, err)
	assert.Equal(t, int32(0), share)
}

func TestPercentageOfDuplicatedAddress(t *testing.T) {
	db := store.MemStore()
	a := paytest.NewAddress()

	id, err := createSplitter(db, &Splitter{
		Recipients: []*Recipient{
			{Address: a, Share: 30},
			{Address: a, Share: 70},
		},
	})
	assert.Nil(t, err)

	// Only the first declaration is reported even though the address
	// effectively earns the combined allocation.
	share, err := PercentageOf(db, id, a)
	assert.Nil(t, err)
	assert.Equal(t, int32(30), share)
}

func TestPoolAccountIsPerInstance(t *testing.T) {
	one := PoolAccount(paytest.SequenceID(1))
	two := PoolAccount(paytest.SequenceID(2))
	assert.Nil(t, one.Validate())
	if one.Equals(two) {
		t.Fatal("pool accounts of different instances must differ")
	}
	// Deterministic for the same instance.
	assert.Equal(t, one, PoolAccount(paytest.SequenceID(1)))
}
