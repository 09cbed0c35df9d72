package cash

import (
	"encoding/json"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/coin"
	"github.com/payinbox/payinbox/errors"
)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
	maxRefSize  int = 64
)

// Ensure we implement the Msg interface
var _ payinbox.Msg = (*SendMsg)(nil)

// SendMsg moves funds between two accounts.
type SendMsg struct {
	Src    payinbox.Address `json:"src"`
	Dest   payinbox.Address `json:"dest"`
	Amount *coin.Coin       `json:"amount"`
	// Memo is a free text comment attached to the transfer.
	Memo string `json:"memo,omitempty"`
	// Ref is an optional binary reference to an external document.
	Ref []byte `json:"ref,omitempty"`
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	if s.Amount == nil || !s.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive send: %v", s.Amount)
	}
	if err := s.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := s.Src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := s.Dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	if len(s.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	if len(s.Ref) > maxRefSize {
		return errors.Wrap(errors.ErrInput, "ref too long")
	}
	return nil
}

func (s *SendMsg) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

func (s *SendMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, s)
}

var _ payinbox.Msg = (*UpdateConfigurationMsg)(nil)

// UpdateConfigurationMsg patches the cash configuration. Zero value
// fields of the patch are left unchanged.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

// Validate will skip any zero fields and validate the set ones.
func (m *UpdateConfigurationMsg) Validate() error {
	c := m.Patch
	if c == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	if len(c.Owner) != 0 {
		if err := c.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	if len(c.CollectorAddress) != 0 {
		if err := c.CollectorAddress.Validate(); err != nil {
			return errors.Wrap(err, "collector")
		}
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

func (*UpdateConfigurationMsg) Path() string {
	return "cash/update_configuration"
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}
