package custody

import (
	"testing"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/coin"
	"github.com/payinbox/payinbox/errors"
	"github.com/payinbox/payinbox/payinboxtest"
)

func TestCreateMsgValidate(t *testing.T) {
	sender := payinboxtest.NewCondition().Address()

	valid := func() CreateMsg {
		return CreateMsg{
			Src:                  sender,
			RecipientFingerprint: HashClaimCode([]byte("recipient@example.com")),
			ClaimCodeCommitment:  HashClaimCode([]byte("code")),
			Amount:               coin.NewCoin(10, "PBX"),
			DurationHours:        24,
		}
	}

	cases := map[string]struct {
		mod     func(*CreateMsg)
		wantErr *errors.Error
	}{
		"valid": {
			mod: func(*CreateMsg) {},
		},
		"missing source": {
			mod:     func(m *CreateMsg) { m.Src = nil },
			wantErr: errors.ErrInput,
		},
		"short fingerprint": {
			mod:     func(m *CreateMsg) { m.RecipientFingerprint = []byte("short") },
			wantErr: errors.ErrInput,
		},
		"short commitment": {
			mod:     func(m *CreateMsg) { m.ClaimCodeCommitment = []byte("short") },
			wantErr: errors.ErrInput,
		},
		"zero amount": {
			mod:     func(m *CreateMsg) { m.Amount = coin.NewCoin(0, "PBX") },
			wantErr: errors.ErrAmount,
		},
		"bad ticker": {
			mod:     func(m *CreateMsg) { m.Amount = coin.NewCoin(10, "io") },
			wantErr: errors.ErrCurrency,
		},
		"missing duration": {
			mod:     func(m *CreateMsg) { m.DurationHours = 0 },
			wantErr: ErrDuration,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			msg := valid()
			tc.mod(&msg)
			if err := msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestClaimMsgValidateChecksLengthFirst(t *testing.T) {
	// Even with every other field broken, an oversized code must be
	// reported as such, before anything else is looked at.
	msg := ClaimMsg{
		ClaimCode: make([]byte, MaxClaimCodeLen+1),
	}
	if err := msg.Validate(); !ErrCodeTooLong.Is(err) {
		t.Fatalf("want a code too long error, got %+v", err)
	}
}

func TestMsgPaths(t *testing.T) {
	paths := map[payinbox.Msg]string{
		&CreateMsg{}:             "custody/create",
		&ClaimMsg{}:              "custody/claim",
		&CancelMsg{}:             "custody/cancel",
		&ReclaimMsg{}:            "custody/reclaim",
		&UpdateConfigurationMsg{}: "custody/update_configuration",
	}
	for msg, want := range paths {
		if got := msg.Path(); got != want {
			t.Errorf("want %q, got %q", want, got)
		}
	}
}
