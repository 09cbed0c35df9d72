package payinboxtest

import "github.com/payinbox/payinbox"

// Tx represents a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg payinbox.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ payinbox.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (payinbox.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("not implemented")
}

func (tx *Tx) Marshal() ([]byte, error) {
	panic("not implemented")
}

// Msg is a mock message implementation. Message is a request processed
// within a single transaction.
type Msg struct {
	// RoutePath is returned by the Path method, consumed by the router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by any method call.
	Err error
}

var _ payinbox.Msg = (*Msg)(nil)

func (msg *Msg) Path() string {
	return msg.RoutePath
}

func (msg *Msg) Marshal() ([]byte, error) {
	return msg.Serialized, msg.Err
}

func (msg *Msg) Unmarshal(b []byte) error {
	msg.Serialized = b
	return msg.Err
}

func (msg *Msg) Validate() error {
	return msg.Err
}
