package paysplit_test

import (
	"encoding/json"
	"testing"

	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOptions(t *testing.T) {
	opts := paysplit.Options{
		"split": json.RawMessage(`[{"recipients": []}]`),
		"funds": json.RawMessage(`[{"address": "", "balance": 5}]`),
	}

	var wallets []struct {
		Address paysplit.Address `json:"address"`
		Balance int64            `json:"balance"`
	}
	require.NoError(t, opts.ReadOptions("funds", &wallets))
	require.Len(t, wallets, 1)
	assert.Equal(t, int64(5), wallets[0].Balance)
}

func TestReadOptionsMissingKey(t *testing.T) {
	opts := paysplit.Options{}

	var anything []string
	require.NoError(t, opts.ReadOptions("unknown", &anything))
	assert.Nil(t, anything)
}

func TestReadOptionsInvalidJSON(t *testing.T) {
	opts := paysplit.Options{
		"funds": json.RawMessage(`{invalid`),
	}
	var anything map[string]string
	assert.Error(t, opts.ReadOptions("funds", &anything))
}
