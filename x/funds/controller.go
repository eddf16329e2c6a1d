package funds

import (
	"encoding/binary"
	"math"

	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/errors"
)

// walletPrefix is the storage namespace of all account balances.
const walletPrefix = "funds:"

// Controller manages the wallet balances without any authorization
// checks. Handlers are responsible for deciding who may trigger a move.
type Controller struct{}

// NewController returns a controller operating on the wallet namespace.
func NewController() Controller {
	return Controller{}
}

// Balance returns the amount of value units held by the account. An
// account that was never credited holds zero.
func (Controller) Balance(db paysplit.ReadOnlyKVStore, addr paysplit.Address) (int64, error) {
	raw, err := db.Get(walletKey(addr))
	if err != nil {
		return 0, errors.Wrap(err, "cannot load wallet")
	}
	return decodeBalance(raw), nil
}

// MoveFunds moves the given amount from src to dst. It fails if src does
// not hold sufficient funds.
func (c Controller) MoveFunds(db paysplit.KVStore, src, dst paysplit.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	sender, err := c.Balance(db, src)
	if err != nil {
		return err
	}
	if sender < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, moving %d", sender, amount)
	}
	// Debit and credit of the same account cancel out. Writing both from
	// balances read upfront would instead overwrite the debit and mint.
	if src.Equals(dst) {
		return nil
	}
	recipient, err := c.Balance(db, dst)
	if err != nil {
		return err
	}
	if recipient > math.MaxInt64-amount {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}

	if err := setBalance(db, src, sender-amount); err != nil {
		return err
	}
	return setBalance(db, dst, recipient+amount)
}

// IssueFunds credits the given amount of value units to the destination
// account, creating it if needed.
func (c Controller) IssueFunds(db paysplit.KVStore, dst paysplit.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive issue")
	}
	recipient, err := c.Balance(db, dst)
	if err != nil {
		return err
	}
	if recipient > math.MaxInt64-amount {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}
	return setBalance(db, dst, recipient+amount)
}

func setBalance(db paysplit.KVStore, addr paysplit.Address, value int64) error {
	if value == 0 {
		// An empty wallet and a missing wallet are the same thing.
		return errors.Wrap(db.Delete(walletKey(addr)), "cannot delete wallet")
	}
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(value))
	return errors.Wrap(db.Set(walletKey(addr), raw), "cannot store wallet")
}

func decodeBalance(raw []byte) int64 {
	if raw == nil {
		return 0
	}
	return int64(binary.BigEndian.Uint64(raw))
}

func walletKey(addr paysplit.Address) []byte {
	return append([]byte(walletPrefix), addr...)
}
