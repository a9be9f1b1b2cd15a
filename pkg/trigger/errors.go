package trigger

import "errors"

// Sentinel errors for subscription and delivery.
var (
	// ErrInvalidSubscriber indicates Subscribe was called without a usable
	// handler: a nil Subscriber, a nil func, or a class with no constructor.
	ErrInvalidSubscriber = errors.New("subscriber must respond to Receive")

	// ErrNotImplemented is returned by Base.Perform. Handlers that embed Base
	// and do not declare their own Perform fail with it when invoked.
	ErrNotImplemented = errors.New("subscriber Perform not implemented")
)
