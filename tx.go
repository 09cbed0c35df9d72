package payinbox

import (
	"reflect"

	"github.com/payinbox/payinbox/errors"
)

// Msg is a request for the custody ledger to take an action (make a
// state transition). It is just the request, and must be validated by
// the Handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Validate performs a sanity check on the message content that
	// does not require any state access.
	Validate() error

	// Path returns the routing path of the message. This is used by the
	// Router to locate the proper Handler. Msg should be created
	// alongside the Handler that corresponds to them.
	//
	// Must be of the form [a-z0-9_]+/[a-z0-9_]+
	Path() string
}

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it and unless you
// previously validated the struct, errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshaller, as this almost always requires a
// pointer, and functions that only need to marshal bytes can use the
// Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx represents the data sent from the user to the ledger. It includes
// the actual message, along with information needed to authenticate the
// sender, and anything else needed to pass through middleware.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder can parse bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg extracts the message from the transaction, ensures it is of
// the destination type, validates it and loads it into the destination.
// This is the first call of every message handler.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get msg")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message in transaction")
	}

	dst := reflect.ValueOf(destination)
	src := reflect.ValueOf(msg)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrapf(errors.ErrType, "unsupported destination %T", destination)
	}
	if dst.Type() != src.Type() {
		return errors.Wrapf(errors.ErrMsg, "want %T, got %T", destination, msg)
	}
	dst.Elem().Set(src.Elem())

	return errors.Wrap(destination.Validate(), "validate msg")
}
