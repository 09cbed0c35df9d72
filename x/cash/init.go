package cash

import (
	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/coin"
	"github.com/payinbox/payinbox/errors"
	"github.com/payinbox/payinbox/gconf"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file.
type GenesisAccount struct {
	Address payinbox.Address `json:"address"`
	Coins   coin.Coins       `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ payinbox.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis and save
// it to the database, together with the cash configuration.
func (Initializer) FromGenesis(opts payinbox.Options, kv payinbox.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(kv, opts, "cash", &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %q", acct.Address)
		}
		wallet, err := WalletWith(acct.Address, acct.Coins...)
		if err != nil {
			return errors.Wrapf(err, "account %q", acct.Address)
		}
		if err := bucket.Save(kv, wallet); err != nil {
			return errors.Wrapf(err, "save %q", acct.Address)
		}
	}
	return nil
}
