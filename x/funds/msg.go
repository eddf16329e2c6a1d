package funds

import (
	"encoding/json"

	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/errors"
)

const pathSendMsg = "funds/send"

// SendMsg moves an amount of value units between two wallets.
type SendMsg struct {
	// Source is the debited account. If empty, the main signer is used.
	Source paysplit.Address `json:"source"`

	// Destination is the credited account.
	Destination paysplit.Address `json:"destination"`

	// Amount is the number of whole value units to move.
	Amount int64 `json:"amount"`
}

var _ paysplit.Msg = (*SendMsg)(nil)

func (SendMsg) Path() string {
	return pathSendMsg
}

func (msg *SendMsg) Validate() error {
	if len(msg.Source) != 0 {
		if err := msg.Source.Validate(); err != nil {
			return errors.Wrap(err, "source")
		}
	}
	if err := msg.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if msg.Amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	return nil
}

func (msg *SendMsg) Marshal() ([]byte, error) {
	return json.Marshal(msg)
}

func (msg *SendMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, msg)
}
