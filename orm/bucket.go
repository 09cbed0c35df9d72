/*
Package orm provides an easy to use db wrapper.

Break state space into prefixed sections called Buckets. Each bucket
contains only one type of object, stored under its primary key. All
protocol objects are located by a deterministic key (derived address or
singleton name), so buckets expose point access only.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a generic holder that stores data as well as a prefix to
// separate it from other buckets.
//
// This is a generic building block that should generally be embedded in
// a type-safe wrapper to ensure all data is the same type.
type Bucket struct {
	name   string
	prefix []byte
	proto  Object
}

// NewBucket creates a bucket to store data.
func NewBucket(name string, proto Object) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix. We copy
// into a new array rather than use append, as we don't want consecutive
// calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get one element, nil if not present.
func (b Bucket) Get(db payinbox.ReadOnlyKVStore, key []byte) (Object, error) {
	bz := db.Get(b.DBKey(key))
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Has returns true if the given key holds data.
func (b Bucket) Has(db payinbox.ReadOnlyKVStore, key []byte) bool {
	return db.Has(b.DBKey(key))
}

// Parse takes a key and value data and reconstructs the data this
// Bucket would return. Used internally as part of Get. It is exposed
// mainly as a test helper.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", b.name)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save will write the object, and fail if it does not validate.
func (b Bucket) Save(db payinbox.KVStore, model Object) error {
	err := model.Validate()
	if err != nil {
		return errors.Wrapf(err, "saving %s", b.name)
	}

	bz, err := model.Value().Marshal()
	if err != nil {
		return err
	}
	db.Set(b.DBKey(model.Key()), bz)
	return nil
}

// Delete will remove the value at a key.
func (b Bucket) Delete(db payinbox.KVStore, key []byte) error {
	db.Delete(b.DBKey(key))
	return nil
}
