package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/coin"
	"github.com/payinbox/payinbox/errors"
	"github.com/payinbox/payinbox/payinboxtest"
	"github.com/payinbox/payinbox/store"
	"github.com/payinbox/payinbox/x"
	"github.com/payinbox/payinbox/x/cash"
	"github.com/payinbox/payinbox/x/custody"
)

// feeTx is a transaction carrying fee information, as a host would
// submit it.
type feeTx struct {
	payinboxtest.Tx
	fees *cash.FeeInfo
}

var _ cash.FeeTx = (*feeTx)(nil)

func (tx *feeTx) GetFees() *cash.FeeInfo {
	return tx.fees
}

// TestConditionalPaymentLifecycle wires the whole application the way
// a host would: genesis initialization, a fee decorator on top of a
// router, and the cash plus custody extensions behind it.
func TestConditionalPaymentLifecycle(t *testing.T) {
	sender := payinboxtest.NewCondition()
	recipient := payinboxtest.NewCondition()
	admin := payinboxtest.NewCondition()
	collector := payinboxtest.NewCondition().Address()

	genesis, err := json.Marshal(map[string]interface{}{
		"conf": map[string]interface{}{
			"cash": cash.Configuration{
				Owner:            admin.Address(),
				CollectorAddress: collector,
				MinimalFee:       coin.NewCoin(1, "FEE"),
			},
			"custody": custody.Configuration{
				Owner:            admin.Address(),
				MinAmount:        1,
				MinDurationHours: custody.MinDurationHours,
				MaxDurationHours: custody.MaxDurationHours,
			},
		},
		"cash": []cash.GenesisAccount{
			{
				Address: sender.Address(),
				Coins: coin.Coins{
					coin.NewCoinp(1000, "PBX"),
					coin.NewCoinp(10, "FEE"),
				},
			},
			{
				Address: recipient.Address(),
				Coins:   coin.Coins{coin.NewCoinp(10, "FEE")},
			},
		},
	})
	require.NoError(t, err)

	var opts payinbox.Options
	require.NoError(t, json.Unmarshal(genesis, &opts))

	db := store.MemStore()
	init := ChainInitializers(
		cash.Initializer{},
		custody.Initializer{},
	)
	require.NoError(t, init.FromGenesis(opts, db))

	authKey := "auth"
	auth := x.CtxAuth{Key: authKey}
	ctrl := cash.NewController(cash.NewBucket())

	router := NewRouter()
	cash.RegisterRoutes(router, auth, ctrl)
	custody.RegisterRoutes(router, auth, ctrl, custody.NewLogEmitter(nil))

	handler := ChainDecorators(
		cash.NewFeeDecorator(auth, ctrl),
	).WithHandler(router)

	fee := coin.NewCoinp(1, "FEE")
	claimCode := []byte("genesis-block-claim-code")
	fingerprint := custody.HashClaimCode([]byte("recipient@example.com"))

	deliver := func(at int64, msg payinbox.Msg, signer payinbox.Condition) error {
		info, err := payinbox.NewBlockInfo(1, time.Unix(at, 0), "test-chain", nil)
		require.NoError(t, err)
		ctx := context.Background()
		if signer != nil {
			ctx = auth.SetConditions(ctx, signer)
		}
		tx := &feeTx{
			Tx:   payinboxtest.Tx{Msg: msg},
			fees: &cash.FeeInfo{Fees: fee},
		}
		cache := db.CacheWrap()
		if _, err := handler.Deliver(ctx, info, cache, tx); err != nil {
			cache.Discard()
			return err
		}
		cache.Write()
		return nil
	}

	start := int64(1600000000)

	// Fund a custody record.
	create := &custody.CreateMsg{
		Src:                  sender.Address(),
		RecipientFingerprint: fingerprint,
		ClaimCodeCommitment:  custody.HashClaimCode(claimCode),
		Amount:               coin.NewCoin(400, "PBX"),
		DurationHours:        24,
	}
	require.NoError(t, deliver(start, create, sender))

	// The fee went to the collector.
	got, err := ctrl.Balance(db, collector)
	require.NoError(t, err)
	assert.True(t, got.Contains(coin.NewCoin(1, "FEE")))

	// A wrong code bounces and costs another fee.
	badClaim := &custody.ClaimMsg{
		Sender:               sender.Address(),
		RecipientFingerprint: fingerprint,
		ClaimCode:            []byte("not-the-code"),
		Destination:          recipient.Address(),
	}
	err = deliver(start+100, badClaim, recipient)
	assert.True(t, custody.ErrInvalidClaimCode.Is(err), "%+v", err)

	// The right code settles the payment.
	claim := &custody.ClaimMsg{
		Sender:               sender.Address(),
		RecipientFingerprint: fingerprint,
		ClaimCode:            claimCode,
		Destination:          recipient.Address(),
	}
	require.NoError(t, deliver(start+200, claim, recipient))

	got, err = ctrl.Balance(db, recipient.Address())
	require.NoError(t, err)
	assert.True(t, got.Contains(coin.NewCoin(400, "PBX")))

	// Settled means settled: a replay fails on the record state.
	err = deliver(start+300, claim, recipient)
	assert.True(t, errors.ErrState.Is(err), "%+v", err)

	// A plain transfer through the same stack still works.
	send := &cash.SendMsg{
		Src:    sender.Address(),
		Dest:   recipient.Address(),
		Amount: coin.NewCoinp(100, "PBX"),
	}
	require.NoError(t, deliver(start+400, send, sender))
	got, err = ctrl.Balance(db, recipient.Address())
	require.NoError(t, err)
	assert.True(t, got.Contains(coin.NewCoin(500, "PBX")))
}
