package orm

import (
	"github.com/payinbox/payinbox"
)

// Model is implemented by any entity that can be stored in a bucket.
type Model interface {
	payinbox.Persistent

	// Validate returns an error if the content of the model is not
	// acceptable for persisting.
	Validate() error
}

// CloneableData is an intelligent Model that can be embedded in a
// concrete type that knows how to copy itself.
type CloneableData interface {
	Model

	// Copy returns a deep copy that shares no memory with the original.
	Copy() CloneableData
}

// Object wraps a key together with the data stored under it.
type Object interface {
	// Validate returns an error if the object is not in a valid state
	// to save to the db.
	Validate() error

	Key() []byte
	Value() CloneableData

	// SetKey updates the key this object is stored under. The bucket
	// calls it on every parsed object so a loaded value always knows
	// its own key.
	SetKey([]byte)

	// Clone copies the object completely.
	Clone() Object
}
