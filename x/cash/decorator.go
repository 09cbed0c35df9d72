package cash

import (
	"context"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/coin"
	"github.com/payinbox/payinbox/errors"
	"github.com/payinbox/payinbox/x"
)

// FeeInfo describes who pays what fee for a transaction.
type FeeInfo struct {
	Payer payinbox.Address `json:"payer"`
	Fees  *coin.Coin       `json:"fees"`
}

// DefaultPayer makes sure there is a payer.
// If it was already set, returns f.
// If none was set, returns a new FeeInfo, with the new address set.
func (f *FeeInfo) DefaultPayer(addr payinbox.Address) *FeeInfo {
	if f != nil && len(f.Payer) != 0 {
		return f
	}
	var fees *coin.Coin
	if f != nil {
		fees = f.Fees
	}
	return &FeeInfo{
		Payer: addr,
		Fees:  fees,
	}
}

// GetFees returns the fee coin, nil safe.
func (f *FeeInfo) GetFees() *coin.Coin {
	if f == nil {
		return nil
	}
	return f.Fees
}

// Validate makes sure that this is sensible.
func (f *FeeInfo) Validate() error {
	if f == nil {
		return errors.Wrap(errors.ErrInput, "nil fee info")
	}
	if f.Fees == nil {
		return errors.Wrap(errors.ErrAmount, "fees nil")
	}
	if err := f.Fees.Validate(); err != nil {
		return errors.Wrap(err, "fee")
	}
	if !f.Fees.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative fees")
	}
	return errors.Wrap(f.Payer.Validate(), "payer")
}

// FeeTx is implemented by transactions that carry fee information.
type FeeTx interface {
	GetFees() *FeeInfo
}

// FeeDecorator ensures that the fee can be deducted from the payer
// account. All deducted fees are sent to the collector configured for
// the cash extension.
//
// If the configured minimal fee is zero, no fees are required. If a
// currency is set on the minimal fee, all fees must be paid in that
// currency.
type FeeDecorator struct {
	auth    x.Authenticator
	control Controller
}

var _ payinbox.Decorator = FeeDecorator{}

// NewFeeDecorator returns a FeeDecorator with the given authenticator
// and coin controller.
func NewFeeDecorator(auth x.Authenticator, control Controller) FeeDecorator {
	return FeeDecorator{
		auth:    auth,
		control: control,
	}
}

// Check verifies and deducts fees before calling down the stack
func (d FeeDecorator) Check(ctx context.Context, info payinbox.BlockInfo, store payinbox.KVStore, tx payinbox.Tx, next payinbox.Checker) (*payinbox.CheckResult, error) {
	finfo, err := d.extractFee(ctx, tx, store)
	if err != nil {
		return nil, err
	}
	// If nothing returned, but no error, just move along.
	fee := finfo.GetFees()
	if fee == nil || fee.IsZero() {
		return next.Check(ctx, info, store, tx)
	}

	if err := d.deduct(ctx, store, finfo); err != nil {
		return nil, err
	}

	res, err := next.Check(ctx, info, store, tx)
	if err != nil {
		return nil, err
	}
	res.GasAllocated += fee.Amount
	return res, nil
}

// Deliver verifies and deducts fees before calling down the stack
func (d FeeDecorator) Deliver(ctx context.Context, info payinbox.BlockInfo, store payinbox.KVStore, tx payinbox.Tx, next payinbox.Deliverer) (*payinbox.DeliverResult, error) {
	finfo, err := d.extractFee(ctx, tx, store)
	if err != nil {
		return nil, err
	}
	fee := finfo.GetFees()
	if fee == nil || fee.IsZero() {
		return next.Deliver(ctx, info, store, tx)
	}

	if err := d.deduct(ctx, store, finfo); err != nil {
		return nil, err
	}
	return next.Deliver(ctx, info, store, tx)
}

func (d FeeDecorator) deduct(ctx context.Context, store payinbox.KVStore, finfo *FeeInfo) error {
	// Verify we have access to the money.
	if !d.auth.HasAddress(ctx, finfo.Payer) {
		return errors.Wrap(errors.ErrUnauthorized, "fee payer signature missing")
	}
	conf, err := loadConf(store)
	if err != nil {
		return err
	}
	// And have enough.
	return d.control.MoveCoins(store, finfo.Payer, conf.CollectorAddress, *finfo.GetFees())
}

func (d FeeDecorator) extractFee(ctx context.Context, tx payinbox.Tx, store payinbox.KVStore) (*FeeInfo, error) {
	var finfo *FeeInfo
	if ftx, ok := tx.(FeeTx); ok {
		payer := x.MainSigner(ctx, d.auth).Address()
		finfo = ftx.GetFees().DefaultPayer(payer)
	}

	conf, err := loadConf(store)
	if err != nil {
		return nil, err
	}
	minFee := conf.MinimalFee

	fee := finfo.GetFees()
	if fee == nil || fee.IsZero() {
		if minFee.IsZero() {
			return finfo, nil
		}
		return nil, errors.Wrap(errors.ErrAmount, "fees too low")
	}

	if err := finfo.Validate(); err != nil {
		return nil, err
	}
	if minFee.IsZero() {
		return finfo, nil
	}
	if minFee.Ticker == "" {
		return nil, errors.Wrap(errors.ErrCurrency, "minimal fee without a currency")
	}
	if !fee.SameType(minFee) {
		return nil, errors.Wrapf(errors.ErrCurrency, "fee must be paid in %s", minFee.Ticker)
	}
	if fee.Compare(minFee) < 0 {
		return nil, errors.Wrapf(errors.ErrAmount, "fees too low: %v", fee)
	}
	return finfo, nil
}
