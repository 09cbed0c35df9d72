package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/errors"
	"github.com/payinbox/payinbox/payinboxtest"
	"github.com/payinbox/payinbox/store"
)

type countingHandler struct {
	checked   int
	delivered int
}

var _ payinbox.Handler = (*countingHandler)(nil)

func (h *countingHandler) Check(ctx context.Context, info payinbox.BlockInfo, db payinbox.KVStore, tx payinbox.Tx) (*payinbox.CheckResult, error) {
	h.checked++
	return &payinbox.CheckResult{}, nil
}

func (h *countingHandler) Deliver(ctx context.Context, info payinbox.BlockInfo, db payinbox.KVStore, tx payinbox.Tx) (*payinbox.DeliverResult, error) {
	h.delivered++
	return &payinbox.DeliverResult{}, nil
}

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()
	var handler countingHandler
	r.Handle(&payinboxtest.Msg{RoutePath: "test/good"}, &handler)

	info, err := payinbox.NewBlockInfo(1, time.Now(), "test-chain", nil)
	require.NoError(t, err)
	ctx := context.Background()
	db := store.MemStore()

	tx := &payinboxtest.Tx{Msg: &payinboxtest.Msg{RoutePath: "test/good"}}
	_, err = r.Check(ctx, info, db, tx)
	assert.NoError(t, err)
	_, err = r.Deliver(ctx, info, db, tx)
	assert.NoError(t, err)
	assert.Equal(t, 1, handler.checked)
	assert.Equal(t, 1, handler.delivered)

	// An unknown path is a not found error.
	missing := &payinboxtest.Tx{Msg: &payinboxtest.Msg{RoutePath: "test/missing"}}
	_, err = r.Deliver(ctx, info, db, missing)
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)
}

func TestRouterRejectsBadRegistrations(t *testing.T) {
	r := NewRouter()
	r.Handle(&payinboxtest.Msg{RoutePath: "test/good"}, &countingHandler{})

	// Duplicate registration.
	assert.Panics(t, func() {
		r.Handle(&payinboxtest.Msg{RoutePath: "test/good"}, &countingHandler{})
	})
	// Invalid path.
	assert.Panics(t, func() {
		r.Handle(&payinboxtest.Msg{RoutePath: "no-dashes-allowed"}, &countingHandler{})
	})
}
