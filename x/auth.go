package x

import (
	"context"

	"github.com/payinbox/payinbox"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding one scheme for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled,
	// you may want GetAddresses helper
	GetConditions(context.Context) []payinbox.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(context.Context, payinbox.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx context.Context) []payinbox.Condition {
	var res []payinbox.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx context.Context, addr payinbox.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator
func GetAddresses(ctx context.Context, auth Authenticator) []payinbox.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]payinbox.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first permission if any, otherwise nil
func MainSigner(ctx context.Context, auth Authenticator) payinbox.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx context.Context, auth Authenticator, required []payinbox.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// CtxAuth exposes the conditions the host attested for this transaction.
// The host verifies signatures before dispatch and injects the resulting
// conditions into the request context under its own key.
type CtxAuth struct {
	Key interface{}
}

var _ Authenticator = CtxAuth{}

// SetConditions returns a context with the given conditions attached.
func (a CtxAuth) SetConditions(ctx context.Context, conds ...payinbox.Condition) context.Context {
	return context.WithValue(ctx, a.Key, conds)
}

// GetConditions returns the conditions attached to the context, if any.
func (a CtxAuth) GetConditions(ctx context.Context) []payinbox.Condition {
	val, _ := ctx.Value(a.Key).([]payinbox.Condition)
	return val
}

// HasAddress checks if any attached condition resolves to this address.
func (a CtxAuth) HasAddress(ctx context.Context, addr payinbox.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
