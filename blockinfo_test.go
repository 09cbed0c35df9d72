package payinbox_test

import (
	"testing"
	"time"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/errors"
)

func TestNewBlockInfo(t *testing.T) {
	cases := map[string]struct {
		chainID string
		wantErr *errors.Error
	}{
		"valid chain ID":     {chainID: "test-chain-1"},
		"too short chain ID": {chainID: "abc", wantErr: errors.ErrInput},
		"empty chain ID":     {chainID: "", wantErr: errors.ErrInput},
		"invalid characters": {chainID: "my chain!", wantErr: errors.ErrInput},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			info, err := payinbox.NewBlockInfo(42, time.Now(), tc.chainID, nil)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err != nil {
				return
			}
			if info.ChainID() != tc.chainID {
				t.Fatalf("want %q, got %q", tc.chainID, info.ChainID())
			}
			if info.Height() != 42 {
				t.Fatalf("want height 42, got %d", info.Height())
			}
			if info.Logger() == nil {
				t.Fatal("nil logger must fall back to the default")
			}
		})
	}
}

func TestBlockInfoIsExpired(t *testing.T) {
	now := time.Unix(1600000000, 0)
	info, err := payinbox.NewBlockInfo(1, now, "test-chain", nil)
	if err != nil {
		t.Fatalf("cannot create block info: %+v", err)
	}

	if !info.IsExpired(payinbox.UnixTime(1599999999)) {
		t.Fatal("a past deadline must be expired")
	}
	// Expiration is inclusive of the current instant.
	if !info.IsExpired(info.UnixTime()) {
		t.Fatal("the current instant must be expired")
	}
	if info.IsExpired(payinbox.UnixTime(1600000001)) {
		t.Fatal("a future deadline must not be expired")
	}

	if info.InThePast(now) {
		t.Fatal("InThePast must not include the current instant")
	}
	if info.InTheFuture(now) {
		t.Fatal("InTheFuture must not include the current instant")
	}
	if !info.InThePast(now.Add(-time.Second)) {
		t.Fatal("one second ago must be in the past")
	}
	if !info.InTheFuture(now.Add(time.Second)) {
		t.Fatal("one second ahead must be in the future")
	}
}
