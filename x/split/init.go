package split

import (
	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/errors"
)

// Initializer fulfils the Initializer interface to create splitter
// instances declared in the setup options.
type Initializer struct{}

var _ paysplit.Initializer = (*Initializer)(nil)

// FromGenesis parses splitter declarations and saves them to the
// database. Instances are created in declaration order so their IDs are
// assigned deterministically.
func (*Initializer) FromGenesis(opts paysplit.Options, db paysplit.KVStore) error {
	var splitters []struct {
		Recipients []*Recipient `json:"recipients"`
	}
	if err := opts.ReadOptions("split", &splitters); err != nil {
		return errors.Wrap(err, "cannot load split")
	}
	for i, s := range splitters {
		if _, err := createSplitter(db, &Splitter{Recipients: s.Recipients}); err != nil {
			return errors.Wrapf(err, "cannot create splitter #%d", i)
		}
	}
	return nil
}
