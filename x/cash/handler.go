package cash

import (
	"context"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/errors"
	"github.com/payinbox/payinbox/gconf"
	"github.com/payinbox/payinbox/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r payinbox.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
	r.Handle(&UpdateConfigurationMsg{}, NewConfigHandler(auth))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ payinbox.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx context.Context, info payinbox.BlockInfo, store payinbox.KVStore, tx payinbox.Tx) (*payinbox.CheckResult, error) {
	var msg SendMsg
	if err := payinbox.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Make sure we have permission from the source.
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}

	res := payinbox.CheckResult{
		GasAllocated: sendTxCost,
	}
	return &res, nil
}

// Deliver moves the tokens from source to destination if
// all preconditions are met
func (h SendHandler) Deliver(ctx context.Context, info payinbox.BlockInfo, store payinbox.KVStore, tx payinbox.Tx) (*payinbox.DeliverResult, error) {
	var msg SendMsg
	if err := payinbox.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Make sure we have permission from the source.
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}

	if err := h.control.MoveCoins(store, msg.Src, msg.Dest, *msg.Amount); err != nil {
		return nil, err
	}
	return &payinbox.DeliverResult{}, nil
}

// NewConfigHandler returns the handler updating this package's
// configuration singleton.
func NewConfigHandler(auth x.Authenticator) payinbox.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler("cash", &conf, auth)
}
