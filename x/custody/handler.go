package custody

import (
	"context"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/errors"
	"github.com/payinbox/payinbox/gconf"
	"github.com/payinbox/payinbox/x"
	"github.com/payinbox/payinbox/x/cash"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r payinbox.Registry, auth x.Authenticator, ctrl cash.Controller, sink EventSink) {
	if sink == nil {
		sink = NopSink{}
	}
	bucket := NewBucket()

	r.Handle(&CreateMsg{}, CreateHandler{auth: auth, bucket: bucket, bank: ctrl, sink: sink})
	r.Handle(&ClaimMsg{}, ClaimHandler{auth: auth, bucket: bucket, bank: ctrl, sink: sink})
	r.Handle(&CancelMsg{}, CancelHandler{auth: auth, bucket: bucket, bank: ctrl, sink: sink})
	r.Handle(&ReclaimMsg{}, ReclaimHandler{bucket: bucket, bank: ctrl, sink: sink})
	r.Handle(&UpdateConfigurationMsg{}, NewConfigHandler(auth))
}

// NewConfigHandler returns the handler updating this package's
// configuration singleton.
func NewConfigHandler(auth x.Authenticator) payinbox.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler("custody", &conf, auth)
}

//---- create

// CreateHandler opens a new custody record and funds its custody
// account.
type CreateHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.Controller
	sink   EventSink
}

var _ payinbox.Handler = CreateHandler{}

// Check does the validation and sets the cost of the transaction
func (h CreateHandler) Check(ctx context.Context, info payinbox.BlockInfo, db payinbox.KVStore, tx payinbox.Tx) (*payinbox.CheckResult, error) {
	if _, _, err := h.validate(ctx, info, db, tx); err != nil {
		return nil, err
	}
	return &payinbox.CheckResult{GasAllocated: createCustodyCost}, nil
}

// Deliver moves the tokens from the sender to the custody account and
// persists the new record if all conditions are met.
func (h CreateHandler) Deliver(ctx context.Context, info payinbox.BlockInfo, db payinbox.KVStore, tx payinbox.Tx) (*payinbox.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, info, db, tx)
	if err != nil {
		return nil, err
	}

	expiresAt, err := expireAt(info.UnixTime(), msg.DurationHours, conf.MinDurationHours, conf.MaxDurationHours)
	if err != nil {
		return nil, err
	}

	custodyAddr := CustodyAccount(msg.Src, msg.RecipientFingerprint)
	record := &CustodyRecord{
		Sender:               msg.Src,
		RecipientFingerprint: msg.RecipientFingerprint,
		ClaimCodeCommitment:  msg.ClaimCodeCommitment,
		Amount:               msg.Amount,
		CustodyAccount:       custodyAddr,
		CreatedAt:            info.UnixTime(),
		ExpiresAt:            expiresAt,
		Status:               StatusActive,
		Disambiguator:        disambiguator(custodyAddr),
	}

	if err := h.bank.MoveCoins(db, msg.Src, custodyAddr, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "cannot fund custody account")
	}
	if conf.Deposit != nil {
		if err := h.bank.MoveCoins(db, msg.Src, custodyAddr, *conf.Deposit); err != nil {
			return nil, errors.Wrap(err, "cannot collect deposit")
		}
	}

	if err := h.bucket.Save(db, record); err != nil {
		return nil, err
	}

	h.sink.CustodyCreated(CreatedEvent{
		Sender:               record.Sender,
		RecipientFingerprint: record.RecipientFingerprint,
		CustodyAccount:       record.CustodyAccount,
		Amount:               record.Amount,
		ExpiresAt:            record.ExpiresAt,
	})

	// Return the record key to use in future calls.
	return &payinbox.DeliverResult{
		Data: recordKey(record.Sender, record.RecipientFingerprint),
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateHandler) validate(ctx context.Context, info payinbox.BlockInfo, db payinbox.KVStore, tx payinbox.Tx) (*CreateMsg, Configuration, error) {
	var conf Configuration
	var msg CreateMsg
	if err := payinbox.LoadMsg(tx, &msg); err != nil {
		return nil, conf, errors.Wrap(err, "load msg")
	}

	// Sender must authorize this.
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, conf, errors.Wrap(errors.ErrUnauthorized, "sender signature missing")
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, conf, err
	}
	if msg.Amount.Amount < conf.MinAmount {
		return nil, conf, errors.Wrapf(errors.ErrAmount, "below minimum of %d", conf.MinAmount)
	}
	// Range check before any expiry arithmetic.
	if _, err := expireAt(info.UnixTime(), msg.DurationHours, conf.MinDurationHours, conf.MaxDurationHours); err != nil {
		return nil, conf, err
	}

	// One record per (sender, fingerprint) pair, never overwrite.
	if h.bucket.Has(db, msg.Src, msg.RecipientFingerprint) {
		return nil, conf, errors.Wrap(errors.ErrDuplicate, "custody record exists")
	}

	return &msg, conf, nil
}

//---- claim

// ClaimHandler releases the escrowed amount to the destination when
// the correct claim code is presented in time.
type ClaimHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.Controller
	sink   EventSink
}

var _ payinbox.Handler = ClaimHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h ClaimHandler) Check(ctx context.Context, info payinbox.BlockInfo, db payinbox.KVStore, tx payinbox.Tx) (*payinbox.CheckResult, error) {
	if _, _, err := h.validate(ctx, info, db, tx); err != nil {
		return nil, err
	}
	return &payinbox.CheckResult{GasAllocated: claimCustodyCost}, nil
}

// Deliver moves the escrowed amount to the destination, returns the
// deposit to the sender and marks the record claimed.
func (h ClaimHandler) Deliver(ctx context.Context, info payinbox.BlockInfo, db payinbox.KVStore, tx payinbox.Tx) (*payinbox.DeliverResult, error) {
	msg, record, err := h.validate(ctx, info, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.bank.MoveCoins(db, record.CustodyAccount, msg.Destination, record.Amount); err != nil {
		return nil, errors.Wrap(err, "cannot release funds")
	}
	// Whatever is left in the custody account (the deposit) goes back to
	// the sender and the account is closed.
	if err := closeCustodyAccount(h.bank, db, record.CustodyAccount, record.Sender); err != nil {
		return nil, err
	}

	record.Status = StatusClaimed
	if err := h.bucket.Save(db, record); err != nil {
		return nil, err
	}

	h.sink.CustodyClaimed(ClaimedEvent{
		Sender:               record.Sender,
		RecipientFingerprint: record.RecipientFingerprint,
		Destination:          msg.Destination,
		Amount:               record.Amount,
	})

	return &payinbox.DeliverResult{}, nil
}

// validate does all common pre-processing between Check and Deliver.
// The checks run in a fixed order: code length (in message validation),
// constant time code verification, expiry, status, authorization.
func (h ClaimHandler) validate(ctx context.Context, info payinbox.BlockInfo, db payinbox.KVStore, tx payinbox.Tx) (*ClaimMsg, *CustodyRecord, error) {
	var msg ClaimMsg
	if err := payinbox.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	record, err := loadRecord(h.bucket, db, msg.Sender, msg.RecipientFingerprint)
	if err != nil {
		return nil, nil, err
	}

	if err := verifyClaimCode(msg.ClaimCode, record.ClaimCodeCommitment); err != nil {
		return nil, nil, err
	}
	// A claim is only valid strictly before the expiry instant.
	if info.IsExpired(record.ExpiresAt) {
		return nil, nil, errors.Wrapf(errors.ErrExpired, "expired at %s", record.ExpiresAt)
	}
	if record.Status != StatusActive {
		return nil, nil, errors.Wrapf(errors.ErrState, "record is %s", record.Status)
	}
	// The claimant signs for where the funds land.
	if !h.auth.HasAddress(ctx, msg.Destination) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "destination signature missing")
	}

	return &msg, record, nil
}

//---- cancel

// CancelHandler returns the escrowed funds to the sender. The sender
// may cancel at any time while the record is active.
type CancelHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.Controller
	sink   EventSink
}

var _ payinbox.Handler = CancelHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h CancelHandler) Check(ctx context.Context, info payinbox.BlockInfo, db payinbox.KVStore, tx payinbox.Tx) (*payinbox.CheckResult, error) {
	if _, err := h.validate(ctx, info, db, tx); err != nil {
		return nil, err
	}
	return &payinbox.CheckResult{GasAllocated: cancelCustodyCost}, nil
}

// Deliver sweeps the custody account back to the sender and marks the
// record cancelled.
func (h CancelHandler) Deliver(ctx context.Context, info payinbox.BlockInfo, db payinbox.KVStore, tx payinbox.Tx) (*payinbox.DeliverResult, error) {
	record, err := h.validate(ctx, info, db, tx)
	if err != nil {
		return nil, err
	}

	if err := closeCustodyAccount(h.bank, db, record.CustodyAccount, record.Sender); err != nil {
		return nil, err
	}

	record.Status = StatusCancelled
	if err := h.bucket.Save(db, record); err != nil {
		return nil, err
	}

	h.sink.CustodyCancelled(CancelledEvent{
		Sender:               record.Sender,
		RecipientFingerprint: record.RecipientFingerprint,
		Amount:               record.Amount,
	})

	return &payinbox.DeliverResult{}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CancelHandler) validate(ctx context.Context, info payinbox.BlockInfo, db payinbox.KVStore, tx payinbox.Tx) (*CustodyRecord, error) {
	var msg CancelMsg
	if err := payinbox.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	record, err := loadRecord(h.bucket, db, msg.Sender, msg.RecipientFingerprint)
	if err != nil {
		return nil, err
	}

	// Only the sender may cancel, no matter the clock.
	if !h.auth.HasAddress(ctx, record.Sender) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "sender signature missing")
	}
	if record.Status != StatusActive {
		return nil, errors.Wrapf(errors.ErrState, "record is %s", record.Status)
	}

	return record, nil
}

//---- reclaim

// ReclaimHandler sweeps an expired record back to its sender. Anyone
// may submit the message, there is no reward and the funds always
// return to the record's sender.
type ReclaimHandler struct {
	bucket Bucket
	bank   cash.Controller
	sink   EventSink
}

var _ payinbox.Handler = ReclaimHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h ReclaimHandler) Check(ctx context.Context, info payinbox.BlockInfo, db payinbox.KVStore, tx payinbox.Tx) (*payinbox.CheckResult, error) {
	if _, err := h.validate(ctx, info, db, tx); err != nil {
		return nil, err
	}
	return &payinbox.CheckResult{GasAllocated: reclaimCustodyCost}, nil
}

// Deliver sweeps the custody account back to the sender and marks the
// record expired.
func (h ReclaimHandler) Deliver(ctx context.Context, info payinbox.BlockInfo, db payinbox.KVStore, tx payinbox.Tx) (*payinbox.DeliverResult, error) {
	record, err := h.validate(ctx, info, db, tx)
	if err != nil {
		return nil, err
	}

	if err := closeCustodyAccount(h.bank, db, record.CustodyAccount, record.Sender); err != nil {
		return nil, err
	}

	record.Status = StatusExpired
	if err := h.bucket.Save(db, record); err != nil {
		return nil, err
	}

	h.sink.CustodyReclaimed(ReclaimedEvent{
		Sender:               record.Sender,
		RecipientFingerprint: record.RecipientFingerprint,
		Amount:               record.Amount,
	})

	return &payinbox.DeliverResult{}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h ReclaimHandler) validate(ctx context.Context, info payinbox.BlockInfo, db payinbox.KVStore, tx payinbox.Tx) (*CustodyRecord, error) {
	var msg ReclaimMsg
	if err := payinbox.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	record, err := loadRecord(h.bucket, db, msg.Sender, msg.RecipientFingerprint)
	if err != nil {
		return nil, err
	}

	// A reclaim is only valid at or after the expiry instant.
	if !info.IsExpired(record.ExpiresAt) {
		return nil, errors.Wrapf(ErrNotExpired, "expires at %s", record.ExpiresAt)
	}
	if record.Status != StatusActive {
		return nil, errors.Wrapf(errors.ErrState, "record is %s", record.Status)
	}

	return record, nil
}

// loadRecord loads a record, returns an error if not present.
func loadRecord(bucket Bucket, db payinbox.KVStore, sender payinbox.Address, fingerprint []byte) (*CustodyRecord, error) {
	record, err := bucket.Get(db, sender, fingerprint)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "no custody record")
	}
	return record, nil
}

// closeCustodyAccount pays the whole custody balance (escrowed funds
// still present plus any deposit) to the beneficiary and removes the
// custody wallet.
func closeCustodyAccount(bank cash.Controller, db payinbox.KVStore, custody, beneficiary payinbox.Address) error {
	if _, err := bank.Balance(db, custody); err != nil {
		if errors.ErrNotFound.Is(err) {
			// Already gone, nothing to release.
			return nil
		}
		return err
	}
	// The wallet is removed even when drained, a terminal record leaves
	// no custody account behind.
	return errors.Wrap(bank.CloseWallet(db, custody, beneficiary), "cannot close custody account")
}
