package custody

import (
	"encoding/json"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/coin"
	"github.com/payinbox/payinbox/errors"
)

const (
	createCustodyCost  int64 = 300
	claimCustodyCost   int64 = 0
	cancelCustodyCost  int64 = 0
	reclaimCustodyCost int64 = 0
)

var (
	_ payinbox.Msg = (*CreateMsg)(nil)
	_ payinbox.Msg = (*ClaimMsg)(nil)
	_ payinbox.Msg = (*CancelMsg)(nil)
	_ payinbox.Msg = (*ReclaimMsg)(nil)
	_ payinbox.Msg = (*UpdateConfigurationMsg)(nil)
)

// CreateMsg opens a new custody record, funding the derived custody
// account from the sender's wallet.
type CreateMsg struct {
	Src                  payinbox.Address `json:"src"`
	RecipientFingerprint []byte           `json:"recipient_fingerprint"`
	ClaimCodeCommitment  []byte           `json:"claim_code_commitment"`
	Amount               coin.Coin        `json:"amount"`
	DurationHours        uint32           `json:"duration_hours"`
}

func (CreateMsg) Path() string {
	return "custody/create"
}

func (m *CreateMsg) Validate() error {
	if err := m.Src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if len(m.RecipientFingerprint) != fingerprintLength {
		return errors.Wrapf(errors.ErrInput, "fingerprint must be %d bytes", fingerprintLength)
	}
	if len(m.ClaimCodeCommitment) != commitmentLength {
		return errors.Wrapf(errors.ErrInput, "commitment must be %d bytes", commitmentLength)
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !m.Amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	if m.DurationHours == 0 {
		return errors.Wrap(ErrDuration, "duration missing")
	}
	return nil
}

func (m *CreateMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *CreateMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

// ClaimMsg settles an active record by presenting the claim code. The
// funds are released to Destination, which must be authorized by the
// claimant.
type ClaimMsg struct {
	Sender               payinbox.Address `json:"sender"`
	RecipientFingerprint []byte           `json:"recipient_fingerprint"`
	ClaimCode            []byte           `json:"claim_code"`
	Destination          payinbox.Address `json:"destination"`
}

func (ClaimMsg) Path() string {
	return "custody/claim"
}

func (m *ClaimMsg) Validate() error {
	// The length gate comes before everything else, an oversized code is
	// never hashed.
	if len(m.ClaimCode) > MaxClaimCodeLen {
		return errors.Wrapf(ErrCodeTooLong, "%d bytes", len(m.ClaimCode))
	}
	if len(m.ClaimCode) == 0 {
		return errors.Wrap(errors.ErrEmpty, "claim code")
	}
	if err := m.Sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if len(m.RecipientFingerprint) != fingerprintLength {
		return errors.Wrapf(errors.ErrInput, "fingerprint must be %d bytes", fingerprintLength)
	}
	return errors.Wrap(m.Destination.Validate(), "destination")
}

func (m *ClaimMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *ClaimMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

// CancelMsg returns the escrowed funds to the sender. Only the sender
// may cancel and cancellation is possible at any time while the record
// is active.
type CancelMsg struct {
	Sender               payinbox.Address `json:"sender"`
	RecipientFingerprint []byte           `json:"recipient_fingerprint"`
}

func (CancelMsg) Path() string {
	return "custody/cancel"
}

func (m *CancelMsg) Validate() error {
	if err := m.Sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if len(m.RecipientFingerprint) != fingerprintLength {
		return errors.Wrapf(errors.ErrInput, "fingerprint must be %d bytes", fingerprintLength)
	}
	return nil
}

func (m *CancelMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *CancelMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

// ReclaimMsg sweeps an expired record back to its sender. Anyone may
// submit it, the funds always return to the record's sender.
type ReclaimMsg struct {
	Sender               payinbox.Address `json:"sender"`
	RecipientFingerprint []byte           `json:"recipient_fingerprint"`
}

func (ReclaimMsg) Path() string {
	return "custody/reclaim"
}

func (m *ReclaimMsg) Validate() error {
	if err := m.Sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if len(m.RecipientFingerprint) != fingerprintLength {
		return errors.Wrapf(errors.ErrInput, "fingerprint must be %d bytes", fingerprintLength)
	}
	return nil
}

func (m *ReclaimMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *ReclaimMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

// UpdateConfigurationMsg patches the custody configuration. Zero value
// fields of the patch are left unchanged.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

func (*UpdateConfigurationMsg) Path() string {
	return "custody/update_configuration"
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
	if c.MinAmount < 0 {
		return errors.Wrap(errors.ErrAmount, "min amount cannot be negative")
	}
	if c.MinDurationHours != 0 && c.MaxDurationHours != 0 &&
		c.MaxDurationHours < c.MinDurationHours {
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

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}
