package cash

import (
	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/coin"
	"github.com/payinbox/payinbox/errors"
)

// Controller is the functionality needed by handlers of other
// extensions that move funds around. This allows us to pass it
// directly into those constructors.
type Controller interface {
	// MoveCoins removes funds from the source account and adds them to
	// the destination account.
	MoveCoins(db payinbox.KVStore, src, dest payinbox.Address, amount coin.Coin) error

	// CloseWallet moves the whole balance of an account to the
	// beneficiary and removes the emptied wallet from the store.
	CloseWallet(db payinbox.KVStore, addr, beneficiary payinbox.Address) error

	// Balance returns the amounts currently held by an account.
	Balance(db payinbox.ReadOnlyKVStore, addr payinbox.Address) (coin.Coins, error)

	// IssueCoins increases the balance of an account out of thin air.
	IssueCoins(db payinbox.KVStore, dest payinbox.Address, amount coin.Coin) error
}

// CoinMover is a Controller backed by a wallet bucket.
type CoinMover struct {
	bucket Bucket
}

var _ Controller = CoinMover{}

// NewController returns a base controller implementation.
func NewController(bucket Bucket) CoinMover {
	return CoinMover{bucket: bucket}
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient coins, it fails.
func (m CoinMover) MoveCoins(db payinbox.KVStore, src, dest payinbox.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %v", &amount)
	}

	sender, err := m.bucket.Get(db, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	if !sender.Coins().Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientFunds, "wallet %s holds %s", src, sender.Coins())
	}

	recipient, err := m.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	if err := m.bucket.Save(db, sender); err != nil {
		return err
	}
	return m.bucket.Save(db, recipient)
}

// CloseWallet pays out whatever the account holds to the beneficiary
// and deletes the emptied wallet.
func (m CoinMover) CloseWallet(db payinbox.KVStore, addr, beneficiary payinbox.Address) error {
	wallet, err := m.bucket.Get(db, addr)
	if err != nil {
		return err
	}
	if wallet == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", addr)
	}

	if !wallet.Coins().IsEmpty() {
		recipient, err := m.bucket.GetOrCreate(db, beneficiary)
		if err != nil {
			return err
		}
		if err := recipient.Concat(wallet.Coins()); err != nil {
			return err
		}
		if err := m.bucket.Save(db, recipient); err != nil {
			return err
		}
	}
	return m.bucket.Delete(db, addr)
}

// Balance returns the coins held by an account. It is an error to
// query an account that does not exist.
func (m CoinMover) Balance(db payinbox.ReadOnlyKVStore, addr payinbox.Address) (coin.Coins, error) {
	wallet, err := m.bucket.Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get wallet")
	}
	if wallet == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no wallet %s", addr)
	}
	return wallet.Coins(), nil
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
//
// Note the amount may also be negative:
// "the lord giveth and the lord taketh away"
func (m CoinMover) IssueCoins(db payinbox.KVStore, dest payinbox.Address, amount coin.Coin) error {
	recipient, err := m.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return m.bucket.Save(db, recipient)
}
