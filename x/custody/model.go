package custody

import (
	"bytes"
	"encoding/binary"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/coin"
	"github.com/payinbox/payinbox/errors"
	"github.com/payinbox/payinbox/orm"
)

// BucketName is where custody records are stored.
const BucketName = "custody"

const (
	// fingerprintLength is the exact byte length of a recipient
	// fingerprint.
	fingerprintLength = 32
	// commitmentLength is the exact byte length of a claim code
	// commitment digest.
	commitmentLength = 32
	// assetLength is the width of the zero padded asset ticker field in
	// the serialized record.
	assetLength = 32

	// recordCodecVersion is the first byte of every serialized record.
	// Any other value must be rejected, future formats bump this tag.
	recordCodecVersion = 1

	// recordSize is the exact serialized record length:
	// version 1 + sender 32 + fingerprint 32 + commitment 32 +
	// amount 8 + asset 32 + custody account 32 + created 8 +
	// expires 8 + status 1 + disambiguator 1.
	recordSize = 187
)

// Status describes the lifecycle position of a custody record. The
// zero value is invalid so an uninitialized record never passes for a
// live one.
type Status byte

const (
	StatusActive    Status = 1
	StatusClaimed   Status = 2
	StatusCancelled Status = 3
	StatusExpired   Status = 4
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusClaimed:
		return "claimed"
	case StatusCancelled:
		return "cancelled"
	case StatusExpired:
		return "expired"
	}
	return "invalid"
}

// Validate returns an error unless this is one of the declared states.
func (s Status) Validate() error {
	if s < StatusActive || s > StatusExpired {
		return errors.Wrapf(errors.ErrState, "status %d", s)
	}
	return nil
}

// CustodyRecord is the full state of a single conditional payment. One
// record exists per (sender, recipient fingerprint) pair and it is
// never deleted, a settled record keeps its terminal status.
type CustodyRecord struct {
	// Sender funded the record and is the only party allowed to cancel
	// it. Expired funds always return here.
	Sender payinbox.Address
	// RecipientFingerprint is an opaque 32 byte digest identifying the
	// intended recipient. The engine never learns the identity behind it.
	RecipientFingerprint []byte
	// ClaimCodeCommitment is the Keccak256 digest of the claim code.
	ClaimCodeCommitment []byte
	// Amount is held by the custody account until settlement.
	Amount coin.Coin
	// CustodyAccount is the derived address of the wallet holding the
	// escrowed funds.
	CustodyAccount payinbox.Address
	CreatedAt      payinbox.UnixTime
	ExpiresAt      payinbox.UnixTime
	Status         Status
	// Disambiguator pins the derivation of the custody account, it must
	// match the re-derived value on every load.
	Disambiguator byte
}

var _ orm.CloneableData = (*CustodyRecord)(nil)

// RecordCondition is the derivation of the custody account for a
// (sender, fingerprint) pair. Only the engine re-derives it at
// settlement time, there is no lookup table.
func RecordCondition(sender payinbox.Address, fingerprint []byte) payinbox.Condition {
	return payinbox.NewCondition("custody", "escrow", recordKey(sender, fingerprint))
}

// CustodyAccount returns the address of the wallet holding the
// escrowed funds for a (sender, fingerprint) pair.
func CustodyAccount(sender payinbox.Address, fingerprint []byte) payinbox.Address {
	return RecordCondition(sender, fingerprint).Address()
}

// recordKey is the bucket key of a record: sender bytes followed by the
// fingerprint bytes. One record per pair.
func recordKey(sender payinbox.Address, fingerprint []byte) []byte {
	key := make([]byte, 0, len(sender)+len(fingerprint))
	key = append(key, sender...)
	return append(key, fingerprint...)
}

// disambiguator derives the one byte derivation check for the given
// custody account address.
func disambiguator(custodyAccount payinbox.Address) byte {
	return custodyAccount[len(custodyAccount)-1]
}

// Validate ensures every field is well formed and that the derived
// fields match their derivation.
func (r *CustodyRecord) Validate() error {
	if err := r.Sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if len(r.RecipientFingerprint) != fingerprintLength {
		return errors.Wrapf(errors.ErrInput, "fingerprint must be %d bytes", fingerprintLength)
	}
	if len(r.ClaimCodeCommitment) != commitmentLength {
		return errors.Wrapf(errors.ErrInput, "commitment must be %d bytes", commitmentLength)
	}
	if err := r.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !r.Amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	if err := r.CustodyAccount.Validate(); err != nil {
		return errors.Wrap(err, "custody account")
	}
	want := CustodyAccount(r.Sender, r.RecipientFingerprint)
	if !r.CustodyAccount.Equals(want) {
		return errors.Wrap(errors.ErrState, "custody account does not match derivation")
	}
	if r.Disambiguator != disambiguator(want) {
		return errors.Wrap(errors.ErrState, "disambiguator does not match derivation")
	}
	if err := r.CreatedAt.Validate(); err != nil {
		return errors.Wrap(err, "created at")
	}
	if err := r.ExpiresAt.Validate(); err != nil {
		return errors.Wrap(err, "expires at")
	}
	if r.ExpiresAt <= r.CreatedAt {
		return errors.Wrap(errors.ErrState, "expiry not after creation")
	}
	return r.Status.Validate()
}

// Copy returns a deep copy of the record.
func (r *CustodyRecord) Copy() orm.CloneableData {
	return &CustodyRecord{
		Sender:               r.Sender.Clone(),
		RecipientFingerprint: append([]byte(nil), r.RecipientFingerprint...),
		ClaimCodeCommitment:  append([]byte(nil), r.ClaimCodeCommitment...),
		Amount:               *r.Amount.Clone(),
		CustodyAccount:       r.CustodyAccount.Clone(),
		CreatedAt:            r.CreatedAt,
		ExpiresAt:            r.ExpiresAt,
		Status:               r.Status,
		Disambiguator:        r.Disambiguator,
	}
}

// Marshal serializes the record into its fixed width binary form.
func (r *CustodyRecord) Marshal() ([]byte, error) {
	if len(r.Sender) != payinbox.AddressLength {
		return nil, errors.Wrap(errors.ErrInput, "sender length")
	}
	if len(r.RecipientFingerprint) != fingerprintLength {
		return nil, errors.Wrap(errors.ErrInput, "fingerprint length")
	}
	if len(r.ClaimCodeCommitment) != commitmentLength {
		return nil, errors.Wrap(errors.ErrInput, "commitment length")
	}
	if len(r.CustodyAccount) != payinbox.AddressLength {
		return nil, errors.Wrap(errors.ErrInput, "custody account length")
	}
	if len(r.Amount.Ticker) > assetLength {
		return nil, errors.Wrap(errors.ErrCurrency, "ticker too long")
	}

	raw := make([]byte, 0, recordSize)
	raw = append(raw, recordCodecVersion)
	raw = append(raw, r.Sender...)
	raw = append(raw, r.RecipientFingerprint...)
	raw = append(raw, r.ClaimCodeCommitment...)

	var amount [8]byte
	binary.BigEndian.PutUint64(amount[:], uint64(r.Amount.Amount))
	raw = append(raw, amount[:]...)

	var asset [assetLength]byte
	copy(asset[:], r.Amount.Ticker)
	raw = append(raw, asset[:]...)

	raw = append(raw, r.CustodyAccount...)

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(r.CreatedAt))
	raw = append(raw, ts[:]...)
	binary.BigEndian.PutUint64(ts[:], uint64(r.ExpiresAt))
	raw = append(raw, ts[:]...)

	raw = append(raw, byte(r.Status), r.Disambiguator)
	return raw, nil
}

// Unmarshal restores a record from its binary form. Any version tag
// other than the current one is rejected.
func (r *CustodyRecord) Unmarshal(raw []byte) error {
	if len(raw) != recordSize {
		return errors.Wrapf(errors.ErrInput, "record must be %d bytes, got %d", recordSize, len(raw))
	}
	if raw[0] != recordCodecVersion {
		return errors.Wrapf(errors.ErrType, "unknown record codec version %d", raw[0])
	}
	raw = raw[1:]

	r.Sender = payinbox.Address(append([]byte(nil), raw[:32]...))
	raw = raw[32:]
	r.RecipientFingerprint = append([]byte(nil), raw[:32]...)
	raw = raw[32:]
	r.ClaimCodeCommitment = append([]byte(nil), raw[:32]...)
	raw = raw[32:]

	r.Amount.Amount = int64(binary.BigEndian.Uint64(raw[:8]))
	raw = raw[8:]
	r.Amount.Ticker = string(bytes.TrimRight(raw[:assetLength], "\x00"))
	raw = raw[assetLength:]

	r.CustodyAccount = payinbox.Address(append([]byte(nil), raw[:32]...))
	raw = raw[32:]

	r.CreatedAt = payinbox.UnixTime(binary.BigEndian.Uint64(raw[:8]))
	raw = raw[8:]
	r.ExpiresAt = payinbox.UnixTime(binary.BigEndian.Uint64(raw[:8]))
	raw = raw[8:]

	r.Status = Status(raw[0])
	r.Disambiguator = raw[1]
	return nil
}

//--- custody.Bucket - type-safe bucket

// Bucket is a type-safe wrapper around orm.Bucket.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a custody.Bucket with default name.
func NewBucket() Bucket {
	proto := orm.NewSimpleObj(nil, new(CustodyRecord))
	return Bucket{
		Bucket: orm.NewBucket(BucketName, proto),
	}
}

// Get loads the record of the given (sender, fingerprint) pair, nil if
// none exists.
func (b Bucket) Get(db payinbox.ReadOnlyKVStore, sender payinbox.Address, fingerprint []byte) (*CustodyRecord, error) {
	obj, err := b.Bucket.Get(db, recordKey(sender, fingerprint))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.Value().(*CustodyRecord), nil
}

// Has returns true if a record exists for the pair.
func (b Bucket) Has(db payinbox.ReadOnlyKVStore, sender payinbox.Address, fingerprint []byte) bool {
	return b.Bucket.Has(db, recordKey(sender, fingerprint))
}

// Save persists the record under its derived key.
func (b Bucket) Save(db payinbox.KVStore, record *CustodyRecord) error {
	key := recordKey(record.Sender, record.RecipientFingerprint)
	return b.Bucket.Save(db, orm.NewSimpleObj(key, record))
}
