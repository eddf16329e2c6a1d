package paysplit

import (
	"reflect"

	"github.com/v-stickykeys/paysplit/errors"
)

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it and unless you
// previously validated the struct, errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separate from Marshaller, as Unmarshal almost always requires a
// pointer receiver.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is a request to make a state transition. It is just the request and
// must be validated by the handlers. All authentication information is in
// the wrapping Tx.
type Msg interface {
	Persistent
	Validate() error

	// Path returns the message path. It is used by the router to locate
	// the proper handler. Must be alphanumeric with / _ - separators.
	Path() string
}

// Tx represents the data sent from the user to the engine. It includes the
// actual message plus anything middleware may need.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if unavailable.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from the transaction, ensures its type
// matches the destination and validates it before returning. Destination
// must be a non-nil pointer to a message of the expected type.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get message")
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrapf(errors.ErrType, "destination must be a non-nil pointer, got %T", destination)
	}
	source := reflect.ValueOf(msg)
	if source.Type() != dest.Type() {
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", destination, msg)
	}
	dest.Elem().Set(source.Elem())

	return errors.Wrap(msg.Validate(), "invalid message")
}
