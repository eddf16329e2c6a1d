package split

import (
	"encoding/binary"
	"math"

	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/errors"
)

// maxDeposit bounds a single deposit so that amount*share cannot overflow
// int64 for any share up to 100.
const maxDeposit = math.MaxInt64 / fullShare

// payout is one recipient's part of a single deposit. Amount can be zero
// when the deposit is too small for the share and the accumulated change
// did not cross a whole unit.
type payout struct {
	recipient paysplit.Address
	amount    int64
}

// allocate splits the amount between the recipients. For every recipient
// the whole part of amount*share/100 is paid immediately while the
// remainder, in hundredths, is added to that recipient's persisted
// change. When the change crosses one hundred, the extra whole unit is
// moved into the payout and the change is reduced modulo 100.
//
// All change mutations are persisted before this function returns, so any
// transfer triggered by the returned payouts observes up to date state.
func allocate(db paysplit.KVStore, splitterID []byte, recipients []*Recipient, amount int64) ([]payout, error) {
	if amount <= 0 {
		return nil, errors.Wrap(errors.ErrAmount, "deposit must be positive")
	}
	if amount > maxDeposit {
		return nil, errors.Wrapf(errors.ErrOverflow, "deposit above %d", int64(maxDeposit))
	}

	payouts := make([]payout, 0, len(recipients))
	for _, r := range recipients {
		units := amount * int64(r.Share)
		whole := units / fullShare
		fraction := units % fullShare

		change, err := ChangeOf(db, splitterID, r.Address)
		if err != nil {
			return nil, err
		}
		change += fraction
		// Old change and fraction are both below 100, so the carry is
		// never more than a single unit.
		carry := change / fullShare
		if err := setChange(db, splitterID, r.Address, change%fullShare); err != nil {
			return nil, err
		}

		payouts = append(payouts, payout{
			recipient: r.Address,
			amount:    whole + carry,
		})
	}
	return payouts, nil
}

// ChangeOf returns the accumulated remainder of the recipient, in
// hundredths of a value unit. The value is always in the 0-99 range.
func ChangeOf(db paysplit.ReadOnlyKVStore, splitterID []byte, addr paysplit.Address) (int64, error) {
	return loadCounter(db, changeKey(splitterID, addr))
}

// BalanceOf returns the whole value units owed to the recipient and not
// yet withdrawn. Only accrual deposits feed this balance.
func BalanceOf(db paysplit.ReadOnlyKVStore, splitterID []byte, addr paysplit.Address) (int64, error) {
	return loadCounter(db, owedKey(splitterID, addr))
}

// Totals reconciles the engine bookkeeping of one splitter instance.
// Owed is the sum of all accrued balances, Change the sum of all
// accumulated remainders in hundredths. The pool account must always hold
// at least Owed + Change/100 value units.
type Totals struct {
	Owed   int64
	Change int64
}

// TotalsOf sums balances and change over all recipients of the instance.
func TotalsOf(db paysplit.ReadOnlyKVStore, splitterID []byte) (*Totals, error) {
	s, err := loadSplitter(db, splitterID)
	if err != nil {
		return nil, err
	}
	var t Totals
	seen := make(map[string]struct{})
	for _, r := range s.Recipients {
		// Count a duplicated address once, the state is shared.
		if _, ok := seen[string(r.Address)]; ok {
			continue
		}
		seen[string(r.Address)] = struct{}{}

		owed, err := BalanceOf(db, splitterID, r.Address)
		if err != nil {
			return nil, err
		}
		change, err := ChangeOf(db, splitterID, r.Address)
		if err != nil {
			return nil, err
		}
		t.Owed += owed
		t.Change += change
	}
	return &t, nil
}

func setChange(db paysplit.KVStore, splitterID []byte, addr paysplit.Address, value int64) error {
	return storeCounter(db, changeKey(splitterID, addr), value)
}

func setBalance(db paysplit.KVStore, splitterID []byte, addr paysplit.Address, value int64) error {
	return storeCounter(db, owedKey(splitterID, addr), value)
}

// addBalance credits owed value units to the recipient.
func addBalance(db paysplit.KVStore, splitterID []byte, addr paysplit.Address, amount int64) error {
	owed, err := BalanceOf(db, splitterID, addr)
	if err != nil {
		return err
	}
	if owed > math.MaxInt64-amount {
		return errors.Wrap(errors.ErrOverflow, "accrued balance")
	}
	return setBalance(db, splitterID, addr, owed+amount)
}

func loadCounter(db paysplit.ReadOnlyKVStore, key []byte) (int64, error) {
	raw, err := db.Get(key)
	if err != nil {
		return 0, errors.Wrap(err, "cannot load counter")
	}
	if raw == nil {
		return 0, nil
	}
	return int64(binary.BigEndian.Uint64(raw)), nil
}

func storeCounter(db paysplit.KVStore, key []byte, value int64) error {
	if value == 0 {
		return errors.Wrap(db.Delete(key), "cannot clear counter")
	}
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(value))
	return errors.Wrap(db.Set(key, raw), "cannot store counter")
}
