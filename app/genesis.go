package app

import (
	"encoding/json"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/errors"
)

// Genesis describes the initial state of the ledger. It is designed to
// be embedded in a host genesis document.
type Genesis struct {
	ChainID    string           `json:"chain_id"`
	AppOptions payinbox.Options `json:"app_options"`
}

// ParseGenesis loads a genesis document from raw JSON.
func ParseGenesis(raw []byte) (Genesis, error) {
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrap(errors.ErrInput, err.Error())
	}
	if !payinbox.IsValidChainID(gen.ChainID) {
		return gen, errors.Wrapf(errors.ErrInput, "invalid chain id %q", gen.ChainID)
	}
	return gen, nil
}

// ChainInitializers lets you initialize many extensions with one
// function.
func ChainInitializers(inits ...payinbox.Initializer) payinbox.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []payinbox.Initializer
}

// FromGenesis will pass opts to all initializers in the list. If any
// returns an error, it is returned and the rest are skipped.
func (c chainInitializer) FromGenesis(opts payinbox.Options, kv payinbox.KVStore) error {
	for _, init := range c.inits {
		if err := init.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
