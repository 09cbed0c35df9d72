/*
Package errors implements custom error interfaces for the protocol.

Error declarations should be generic and cover a broad range of use
cases. Each error instance is registered under a unique code, so that
a client can always map a failure back to a stable reason. New error
types can be created using the Register function.

When a new error instance is created during the runtime, it should
always wrap one of the registered root errors:

  errors.Wrap(errors.ErrState, "custody record already settled")

Matching is done through the root, regardless of how many layers of
wrapping were added on top:

  errors.ErrState.Is(err)
*/
package errors
