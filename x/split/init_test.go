package split

import (
	"encoding/json"
	"fmt"
	"testing"

	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/paytest"
	"github.com/v-stickykeys/paysplit/paytest/assert"
	"github.com/v-stickykeys/paysplit/store"
)

func TestGenesisInitializer(t *testing.T) {
	a := paytest.NewAddress()
	b := paytest.NewAddress()

	opts := paysplit.Options{
		"split": json.RawMessage(fmt.Sprintf(`[
			{"recipients": [
				{"address": %q, "share": 30},
				{"address": %q, "share": 70}
			]},
			{"recipients": [
				{"address": %q, "share": 100}
			]}
		]`, a, b, b)),
	}

	db := store.MemStore()
	var ini Initializer
	assert.Nil(t, ini.FromGenesis(opts, db))

	s, err := loadSplitter(db, paytest.SequenceID(1))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(s.Recipients))
	assert.Equal(t, int32(30), s.Recipients[0].Share)

	s, err = loadSplitter(db, paytest.SequenceID(2))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(s.Recipients))
	assert.Equal(t, b, s.Recipients[0].Address)
}

func TestGenesisInitializerInvalidConfiguration(t *testing.T) {
	opts := paysplit.Options{
		"split": json.RawMessage(fmt.Sprintf(`[
			{"recipients": [{"address": %q, "share": 55}]}
		]`, paytest.NewAddress())),
	}
	db := store.MemStore()
	var ini Initializer
	assert.IsErr(t, ErrShareSum, ini.FromGenesis(opts, db))
}
