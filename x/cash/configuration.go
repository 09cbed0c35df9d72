package cash

import (
	"encoding/json"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/coin"
	"github.com/payinbox/payinbox/errors"
	"github.com/payinbox/payinbox/gconf"
)

// Configuration holds the cash extension settings. It is stored as the
// gconf singleton of the "cash" package.
type Configuration struct {
	// Owner is allowed to update the configuration.
	Owner payinbox.Address `json:"owner"`
	// CollectorAddress is the account receiving collected fees.
	CollectorAddress payinbox.Address `json:"collector_address"`
	// MinimalFee is the lowest acceptable transaction fee. A zero
	// value disables fee collection.
	MinimalFee coin.Coin `json:"minimal_fee"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

// GetOwner implements gconf.OwnedConfig
func (c *Configuration) GetOwner() payinbox.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	// owner field is optional... possible to make it immutable
	if len(c.Owner) != 0 {
		if err := c.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner address")
		}
	}
	if len(c.CollectorAddress) == 0 {
		return errors.Wrap(errors.ErrEmpty, "collector address missing")
	}
	if err := c.CollectorAddress.Validate(); err != nil {
		return errors.Wrap(err, "collector address")
	}
	if !c.MinimalFee.IsZero() {
		if err := c.MinimalFee.Validate(); err != nil {
			return errors.Wrap(err, "minimal fee")
		}
		if !c.MinimalFee.IsNonNegative() {
			return errors.Wrap(errors.ErrAmount, "minimal fee cannot be negative")
		}
	}
	return nil
}

func (c *Configuration) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, c)
}

func loadConf(db payinbox.ReadOnlyKVStore) (Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, "cash", &conf); err != nil {
		return conf, errors.Wrap(err, "load configuration")
	}
	return conf, nil
}
