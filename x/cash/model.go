package cash

import (
	"encoding/binary"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/coin"
	"github.com/payinbox/payinbox/errors"
	"github.com/payinbox/payinbox/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// setCodecVersion is the first byte of every serialized wallet set.
const setCodecVersion = 1

// Set keeps the balance of a single wallet.
type Set struct {
	Coins coin.Coins `json:"coins"`
}

var _ orm.CloneableData = (*Set)(nil)

// Validate requires that all coins are in alphabetical order and
// without duplicates or zero values.
func (s *Set) Validate() error {
	return s.Coins.Validate()
}

// Copy makes a new set with the same coins
func (s *Set) Copy() orm.CloneableData {
	return &Set{
		Coins: s.Coins.Clone(),
	}
}

// Marshal serializes the set into a compact binary form. Each coin is
// a fixed width amount followed by a length prefixed ticker.
func (s *Set) Marshal() ([]byte, error) {
	if len(s.Coins) > 255 {
		return nil, errors.Wrap(errors.ErrModel, "too many coins")
	}
	raw := make([]byte, 2, 2+len(s.Coins)*16)
	raw[0] = setCodecVersion
	raw[1] = byte(len(s.Coins))
	for _, c := range s.Coins {
		var amount [8]byte
		binary.BigEndian.PutUint64(amount[:], uint64(c.Amount))
		raw = append(raw, amount[:]...)
		if len(c.Ticker) > 255 {
			return nil, errors.Wrap(errors.ErrCurrency, "ticker too long")
		}
		raw = append(raw, byte(len(c.Ticker)))
		raw = append(raw, c.Ticker...)
	}
	return raw, nil
}

// Unmarshal restores a set from its binary form.
func (s *Set) Unmarshal(raw []byte) error {
	if len(raw) < 2 {
		return errors.Wrap(errors.ErrInput, "truncated wallet")
	}
	if raw[0] != setCodecVersion {
		return errors.Wrapf(errors.ErrType, "unknown wallet codec version %d", raw[0])
	}
	count := int(raw[1])
	raw = raw[2:]
	coins := make(coin.Coins, 0, count)
	for i := 0; i < count; i++ {
		if len(raw) < 9 {
			return errors.Wrap(errors.ErrInput, "truncated wallet coin")
		}
		amount := int64(binary.BigEndian.Uint64(raw[:8]))
		tickerLen := int(raw[8])
		raw = raw[9:]
		if len(raw) < tickerLen {
			return errors.Wrap(errors.ErrInput, "truncated wallet ticker")
		}
		coins = append(coins, coin.NewCoinp(amount, string(raw[:tickerLen])))
		raw = raw[tickerLen:]
	}
	if len(raw) != 0 {
		return errors.Wrap(errors.ErrInput, "trailing wallet bytes")
	}
	s.Coins = coins
	return nil
}

//--- Wallet (Set object, wallet + key)

// Wallet is the actual object that we want to pass around in our code.
// It contains a set of coins, as well as the address. It is connected
// to the Bucket to easily manipulate state.
type Wallet struct {
	key   []byte
	value *Set
}

var _ orm.Object = (*Wallet)(nil)

// NewWallet creates an empty wallet with this address
func NewWallet(key payinbox.Address) *Wallet {
	return &Wallet{
		key:   key,
		value: new(Set),
	}
}

// WalletWith creates a wallet with the given coins, normalized.
func WalletWith(key payinbox.Address, coins ...*coin.Coin) (*Wallet, error) {
	w := NewWallet(key)
	if err := w.Concat(coins); err != nil {
		return nil, err
	}
	return w, nil
}

// Value gets the value stored in the object
func (w Wallet) Value() orm.CloneableData {
	return w.value
}

// Key returns the key to store the object under
func (w Wallet) Key() []byte {
	return w.key
}

// Address is the key cast to the wallet owner address.
func (w Wallet) Address() payinbox.Address {
	return payinbox.Address(w.key)
}

// Validate makes sure the fields aren't empty.
// And delegates to the value validator if present
func (w Wallet) Validate() error {
	if err := payinbox.Address(w.key).Validate(); err != nil {
		return errors.Wrap(err, "wallet address")
	}
	return w.value.Validate()
}

// SetKey may be used to update a simple obj key
func (w *Wallet) SetKey(key []byte) {
	w.key = key
}

// Clone will make a copy of this object
func (w *Wallet) Clone() orm.Object {
	res := &Wallet{
		value: w.value.Copy().(*Set),
	}
	// only copy key if non-nil
	if len(w.key) > 0 {
		res.key = append([]byte(nil), w.key...)
	}
	return res
}

// Coins returns the coins stored in the wallet
func (w Wallet) Coins() coin.Coins {
	return w.value.Coins
}

// Add modifies the wallet to add Coin c
func (w *Wallet) Add(c coin.Coin) error {
	cs, err := w.Coins().Add(c)
	if err != nil {
		return err
	}
	w.value.Coins = cs
	return nil
}

// Subtract modifies the wallet to remove Coin c
func (w *Wallet) Subtract(c coin.Coin) error {
	return w.Add(c.Negative())
}

// Concat combines the coins to make sure they are sorted
// and rounded off, with no duplicates or 0 values.
func (w *Wallet) Concat(coins coin.Coins) error {
	joint := w.Coins()
	for _, c := range coins {
		if c == nil {
			continue
		}
		var err error
		if joint, err = joint.Add(*c); err != nil {
			return err
		}
	}
	w.value.Coins = joint
	return nil
}

//--- cash.Bucket - type-safe bucket

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewWallet(nil)),
	}
}

func (b Bucket) Get(db payinbox.ReadOnlyKVStore, key payinbox.Address) (*Wallet, error) {
	obj, err := b.Bucket.Get(db, key)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*Wallet), nil
}

func (b Bucket) Save(db payinbox.KVStore, wallet *Wallet) error {
	return b.Bucket.Save(db, wallet)
}

func (b Bucket) GetOrCreate(db payinbox.KVStore, key payinbox.Address) (*Wallet, error) {
	wallet, err := b.Get(db, key)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		wallet = NewWallet(key)
	}
	return wallet, nil
}
