package custody

import (
	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/errors"
	"github.com/payinbox/payinbox/gconf"
)

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ payinbox.Initializer = Initializer{}

// FromGenesis will parse initial configuration from genesis and save
// it to the database.
func (Initializer) FromGenesis(opts payinbox.Options, kv payinbox.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(kv, opts, "custody", &conf); err != nil {
		return errors.Wrap(err, "init config")
	}
	return nil
}
