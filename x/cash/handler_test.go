package cash

import (
	"context"
	"testing"
	"time"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/coin"
	"github.com/payinbox/payinbox/errors"
	"github.com/payinbox/payinbox/gconf"
	"github.com/payinbox/payinbox/payinboxtest"
	"github.com/payinbox/payinbox/store"
)

func blockNow(t *testing.T) payinbox.BlockInfo {
	t.Helper()
	info, err := payinbox.NewBlockInfo(100, time.Now(), "test-chain", nil)
	if err != nil {
		t.Fatalf("cannot create block info: %+v", err)
	}
	return info
}

func TestSendHandler(t *testing.T) {
	foo := coin.NewCoin(100, "FOO")
	some := coin.NewCoin(300, "SOME")

	perm := payinboxtest.NewCondition()
	perm2 := payinboxtest.NewCondition()
	addr := perm.Address()
	addr2 := perm2.Address()

	cases := map[string]struct {
		signers        []payinbox.Condition
		initState      []*Wallet
		msg            payinbox.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
	}{
		"nil message": {
			wantCheckErr:   errors.ErrMsg,
			wantDeliverErr: errors.ErrMsg,
		},
		"empty message": {
			msg:            &SendMsg{},
			wantCheckErr:   errors.ErrAmount,
			wantDeliverErr: errors.ErrAmount,
		},
		"unauthorized": {
			msg:            &SendMsg{Amount: &foo, Src: addr, Dest: addr2},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"empty account": {
			signers:        []payinbox.Condition{perm},
			msg:            &SendMsg{Amount: &foo, Src: addr, Dest: addr2},
			wantDeliverErr: errors.ErrEmpty,
		},
		"insufficient funds": {
			signers:        []payinbox.Condition{perm},
			initState:      []*Wallet{mustWallet(t, addr, some)},
			msg:            &SendMsg{Amount: &foo, Src: addr, Dest: addr2},
			wantDeliverErr: errors.ErrInsufficientFunds,
		},
		"successful send": {
			signers:   []payinbox.Condition{perm},
			initState: []*Wallet{mustWallet(t, addr, some, foo)},
			msg:       &SendMsg{Amount: &foo, Src: addr, Dest: addr2},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			auth := &payinboxtest.Auth{Signers: tc.signers}
			h := NewSendHandler(auth, NewController(NewBucket()))

			kv := store.MemStore()
			bucket := NewBucket()
			for _, wallet := range tc.initState {
				if err := bucket.Save(kv, wallet); err != nil {
					t.Fatalf("cannot save wallet: %+v", err)
				}
			}

			tx := &payinboxtest.Tx{Msg: tc.msg}
			ctx := context.Background()
			info := blockNow(t)

			if _, err := h.Check(ctx, info, kv, tx); !tc.wantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			if _, err := h.Deliver(ctx, info, kv, tx); !tc.wantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			if tc.wantDeliverErr == nil && tc.wantCheckErr == nil {
				w, err := bucket.Get(kv, addr2)
				if err != nil {
					t.Fatalf("cannot get destination wallet: %+v", err)
				}
				if w == nil || !w.Coins().Contains(foo) {
					t.Fatal("destination wallet not credited")
				}
			}
		})
	}
}

func mustWallet(t *testing.T, addr payinbox.Address, coins ...coin.Coin) *Wallet {
	t.Helper()
	ptrs := make(coin.Coins, len(coins))
	for i := range coins {
		ptrs[i] = &coins[i]
	}
	w, err := WalletWith(addr, ptrs...)
	if err != nil {
		t.Fatalf("cannot create wallet: %+v", err)
	}
	return w
}

func TestConfigHandler(t *testing.T) {
	owner := payinboxtest.NewCondition()
	rogue := payinboxtest.NewCondition()
	collector := payinboxtest.NewCondition().Address()

	newConf := func() Configuration {
		return Configuration{
			Owner:            owner.Address(),
			CollectorAddress: collector,
			MinimalFee:       coin.NewCoin(2, "FEE"),
		}
	}

	cases := map[string]struct {
		signer  payinbox.Condition
		patch   *Configuration
		wantErr *errors.Error
		wantFee coin.Coin
	}{
		"owner can update": {
			signer:  owner,
			patch:   &Configuration{MinimalFee: coin.NewCoin(11, "FEE")},
			wantFee: coin.NewCoin(11, "FEE"),
		},
		"zero fields are left unchanged": {
			signer:  owner,
			patch:   &Configuration{Owner: owner.Address()},
			wantFee: coin.NewCoin(2, "FEE"),
		},
		"not the owner": {
			signer:  rogue,
			patch:   &Configuration{MinimalFee: coin.NewCoin(11, "FEE")},
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			kv := store.MemStore()
			conf := newConf()
			if err := gconf.Save(kv, "cash", &conf); err != nil {
				t.Fatalf("cannot save configuration: %+v", err)
			}

			auth := &payinboxtest.Auth{Signer: tc.signer}
			h := NewConfigHandler(auth)
			tx := &payinboxtest.Tx{Msg: &UpdateConfigurationMsg{Patch: tc.patch}}

			_, err := h.Deliver(context.Background(), blockNow(t), kv, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}

			var got Configuration
			if err := gconf.Load(kv, "cash", &got); err != nil {
				t.Fatalf("cannot load configuration: %+v", err)
			}
			if !got.MinimalFee.Equals(tc.wantFee) {
				t.Fatalf("unexpected minimal fee: %v", got.MinimalFee)
			}
		})
	}
}
