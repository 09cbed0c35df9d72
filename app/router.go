package app

import (
	"context"
	"regexp"

	"github.com/payinbox/payinbox"
	"github.com/payinbox/payinbox/errors"
)

// isPath ensures a message path is in the extension/action form.
var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Router maps message paths to handlers. It implements the
// payinbox.Registry interface on the setup side and payinbox.Handler on
// the execution side.
type Router struct {
	handlers map[string]payinbox.Handler
}

var _ payinbox.Registry = (*Router)(nil)
var _ payinbox.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]payinbox.Handler),
	}
}

// Handle assigns the given handler to handle processing of every
// message of the same type as the given one. Registering two handlers
// for the same message type or an invalid path is a programmer error
// and panics.
func (r *Router) Handle(m payinbox.Msg, h payinbox.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic("invalid message path: " + path)
	}
	if _, ok := r.handlers[path]; ok {
		panic("already registered message path: " + path)
	}
	r.handlers[path] = h
}

// handler returns the registered Handler for this message path, or the
// notFoundHandler if none was registered.
func (r *Router) handler(path string) payinbox.Handler {
	if h, ok := r.handlers[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches the transaction to the handler of its message.
func (r *Router) Check(ctx context.Context, info payinbox.BlockInfo, db payinbox.KVStore, tx payinbox.Tx) (*payinbox.CheckResult, error) {
	return r.handler(payinbox.GetPath(tx)).Check(ctx, info, db, tx)
}

// Deliver dispatches the transaction to the handler of its message.
func (r *Router) Deliver(ctx context.Context, info payinbox.BlockInfo, db payinbox.KVStore, tx payinbox.Tx) (*payinbox.DeliverResult, error) {
	return r.handler(payinbox.GetPath(tx)).Deliver(ctx, info, db, tx)
}

// notFoundHandler always returns a not found error. The path is kept
// for the error message.
type notFoundHandler string

var _ payinbox.Handler = notFoundHandler("")

func (p notFoundHandler) Check(ctx context.Context, info payinbox.BlockInfo, db payinbox.KVStore, tx payinbox.Tx) (*payinbox.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(p))
}

func (p notFoundHandler) Deliver(ctx context.Context, info payinbox.BlockInfo, db payinbox.KVStore, tx payinbox.Tx) (*payinbox.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(p))
}
