package paytest

import (
	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/errors"
)

// Tx is a mock implementing the paysplit.Tx interface, wrapping a single
// message.
type Tx struct {
	// Msg is the message that this transaction is carrying.
	Msg paysplit.Msg

	// Err, if set, is returned by all method calls.
	Err error
}

var _ paysplit.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (paysplit.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal([]byte) error {
	if tx.Err != nil {
		return tx.Err
	}
	return errors.Wrap(errors.ErrHuman, "not implemented")
}
