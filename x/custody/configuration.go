package custody

import (
	"encoding/json"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/coin"
	"github.com/payinbox/payinbox/errors"
	"github.com/payinbox/payinbox/gconf"
)

// Configuration holds the custody extension settings, stored as the
// gconf singleton of the "custody" package.
type Configuration struct {
	// Owner is allowed to update the configuration.
	Owner payinbox.Address `json:"owner"`
	// MinAmount is the smallest escrow size, in base units of whatever
	// asset is escrowed.
	MinAmount int64 `json:"min_amount"`
	// MinDurationHours is the shortest accepted custody duration.
	MinDurationHours uint32 `json:"min_duration_hours"`
	// MaxDurationHours is the longest accepted custody duration.
	MaxDurationHours uint32 `json:"max_duration_hours"`
	// Deposit, when set, is moved from the sender into the custody
	// account on creation and returned to the sender when the custody
	// wallet is closed, no matter how the record settles.
	Deposit *coin.Coin `json:"deposit,omitempty"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

// GetOwner implements gconf.OwnedConfig
func (c *Configuration) GetOwner() payinbox.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner address")
	}
	if c.MinAmount < 1 {
		return errors.Wrap(errors.ErrAmount, "min amount must be at least 1")
	}
	if c.MinDurationHours < 1 {
		return errors.Wrap(ErrDuration, "min duration must be at least one hour")
	}
	if c.MaxDurationHours < c.MinDurationHours {
		return errors.Wrap(ErrDuration, "max duration below min duration")
	}
	if c.Deposit != nil {
		if err := c.Deposit.Validate(); err != nil {
			return errors.Wrap(err, "deposit")
		}
		if !c.Deposit.IsPositive() {
			return errors.Wrap(errors.ErrAmount, "deposit must be positive")
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
	if err := gconf.Load(db, "custody", &conf); err != nil {
		return conf, errors.Wrap(err, "load configuration")
	}
	return conf, nil
}
