package cash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payinbox/payinbox/coin"
	"github.com/payinbox/payinbox/payinboxtest"
	"github.com/payinbox/payinbox/store"
)

func TestWalletValidate(t *testing.T) {
	addr := payinboxtest.NewCondition().Address()

	w := NewWallet(nil)
	assert.Error(t, w.Validate())

	w = NewWallet(addr)
	assert.NoError(t, w.Validate())

	require.NoError(t, w.Add(coin.NewCoin(5, "FOO")))
	assert.NoError(t, w.Validate())
}

func TestWalletSerialization(t *testing.T) {
	addr := payinboxtest.NewCondition().Address()
	w, err := WalletWith(addr, coin.NewCoinp(123, "FOO"), coin.NewCoinp(-5, "BAR"))
	require.NoError(t, err)

	raw, err := w.Value().(*Set).Marshal()
	require.NoError(t, err)

	var loaded Set
	require.NoError(t, loaded.Unmarshal(raw))
	assert.True(t, loaded.Coins.Equals(w.Coins()), "got %s", loaded.Coins)

	// garbage must be rejected
	assert.Error(t, new(Set).Unmarshal([]byte{99, 1, 2, 3}))
	assert.Error(t, new(Set).Unmarshal(raw[:len(raw)-1]))
}

func TestBucketRestoresWalletKey(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket()
	addr := payinboxtest.NewCondition().Address()

	w, err := WalletWith(addr, coin.NewCoinp(55, "FOO"))
	require.NoError(t, err)
	require.NoError(t, bucket.Save(db, w))

	// A wallet loaded from the store must know its own address so it
	// can be modified and saved again.
	loaded, err := bucket.Get(db, addr)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.Address().Equals(addr), "got %s", loaded.Address())

	require.NoError(t, loaded.Add(coin.NewCoin(1, "FOO")))
	assert.NoError(t, bucket.Save(db, loaded))
}

func TestWalletCloneIsIndependent(t *testing.T) {
	addr := payinboxtest.NewCondition().Address()
	w, err := WalletWith(addr, coin.NewCoinp(10, "FOO"))
	require.NoError(t, err)

	clone := w.Clone().(*Wallet)
	require.NoError(t, clone.Add(coin.NewCoin(7, "FOO")))

	assert.True(t, w.Coins().Contains(coin.NewCoin(10, "FOO")))
	assert.False(t, w.Coins().Contains(coin.NewCoin(17, "FOO")))
	assert.True(t, clone.Coins().Contains(coin.NewCoin(17, "FOO")))
}
