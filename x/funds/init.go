package funds

import (
	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/errors"
)

// Initializer fulfils the Initializer interface to load wallet balances
// from the setup options.
type Initializer struct{}

var _ paysplit.Initializer = (*Initializer)(nil)

// FromGenesis parses initial wallet balances and saves them to the
// database.
func (*Initializer) FromGenesis(opts paysplit.Options, db paysplit.KVStore) error {
	var wallets []struct {
		Address paysplit.Address `json:"address"`
		Balance int64            `json:"balance"`
	}
	if err := opts.ReadOptions("funds", &wallets); err != nil {
		return errors.Wrap(err, "cannot load funds")
	}

	ctrl := NewController()
	for i, w := range wallets {
		if err := w.Address.Validate(); err != nil {
			return errors.Wrapf(err, "wallet #%d address", i)
		}
		if err := ctrl.IssueFunds(db, w.Address, w.Balance); err != nil {
			return errors.Wrapf(err, "cannot credit wallet #%d", i)
		}
	}
	return nil
}
