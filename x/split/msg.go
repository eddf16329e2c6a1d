package split

import (
	"encoding/json"

	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/errors"
)

const (
	pathCreateMsg        = "split/create"
	pathPushDepositMsg   = "split/pushDeposit"
	pathAccrueDepositMsg = "split/accrueDeposit"
	pathWithdrawMsg      = "split/withdraw"
	pathDisperseMsg      = "split/disperse"
)

// CreateMsg sets up a new splitter instance. This is the only moment the
// recipient set can be declared, there is no update message.
type CreateMsg struct {
	Recipients []*Recipient `json:"recipients"`
}

var _ paysplit.Msg = (*CreateMsg)(nil)

func (CreateMsg) Path() string {
	return pathCreateMsg
}

func (msg *CreateMsg) Validate() error {
	return ValidateRecipients(msg.Recipients, errors.ErrMsg)
}

func (msg *CreateMsg) Marshal() ([]byte, error) {
	return json.Marshal(msg)
}

func (msg *CreateMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, msg)
}

// PushDepositMsg deposits an amount and transfers every computed payout
// to its recipient within the same call.
type PushDepositMsg struct {
	SplitterID []byte `json:"splitter_id"`
	Amount     int64  `json:"amount"`
}

var _ paysplit.Msg = (*PushDepositMsg)(nil)

func (PushDepositMsg) Path() string {
	return pathPushDepositMsg
}

func (msg *PushDepositMsg) Validate() error {
	return validateDeposit(msg.SplitterID, msg.Amount)
}

func (msg *PushDepositMsg) Marshal() ([]byte, error) {
	return json.Marshal(msg)
}

func (msg *PushDepositMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, msg)
}

// AccrueDepositMsg deposits an amount and only credits the internal
// recipient balances. With Disperse set, the freshly accrued balances are
// drained in the same call, giving the same observable transfers as a
// push deposit routed through the accrual bookkeeping.
type AccrueDepositMsg struct {
	SplitterID []byte `json:"splitter_id"`
	Amount     int64  `json:"amount"`
	Disperse   bool   `json:"disperse,omitempty"`
}

var _ paysplit.Msg = (*AccrueDepositMsg)(nil)

func (AccrueDepositMsg) Path() string {
	return pathAccrueDepositMsg
}

func (msg *AccrueDepositMsg) Validate() error {
	return validateDeposit(msg.SplitterID, msg.Amount)
}

func (msg *AccrueDepositMsg) Marshal() ([]byte, error) {
	return json.Marshal(msg)
}

func (msg *AccrueDepositMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, msg)
}

// WithdrawMsg transfers the accrued balance of one recipient out of the
// pool. A zero balance is a successful no-op.
type WithdrawMsg struct {
	SplitterID []byte           `json:"splitter_id"`
	Recipient  paysplit.Address `json:"recipient"`
}

var _ paysplit.Msg = (*WithdrawMsg)(nil)

func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

func (msg *WithdrawMsg) Validate() error {
	if len(msg.SplitterID) == 0 {
		return errors.Wrap(errors.ErrMsg, "splitter ID missing")
	}
	if err := msg.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	return nil
}

func (msg *WithdrawMsg) Marshal() ([]byte, error) {
	return json.Marshal(msg)
}

func (msg *WithdrawMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, msg)
}

// DisperseMsg withdraws for every recipient in declaration order.
type DisperseMsg struct {
	SplitterID []byte `json:"splitter_id"`
}

var _ paysplit.Msg = (*DisperseMsg)(nil)

func (DisperseMsg) Path() string {
	return pathDisperseMsg
}

func (msg *DisperseMsg) Validate() error {
	if len(msg.SplitterID) == 0 {
		return errors.Wrap(errors.ErrMsg, "splitter ID missing")
	}
	return nil
}

func (msg *DisperseMsg) Marshal() ([]byte, error) {
	return json.Marshal(msg)
}

func (msg *DisperseMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, msg)
}

func validateDeposit(splitterID []byte, amount int64) error {
	if len(splitterID) == 0 {
		return errors.Wrap(errors.ErrMsg, "splitter ID missing")
	}
	if amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "deposit must be positive")
	}
	if amount > maxDeposit {
		return errors.Wrapf(errors.ErrOverflow, "deposit above %d", int64(maxDeposit))
	}
	return nil
}
