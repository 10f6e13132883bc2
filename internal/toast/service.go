package toast

import (
	"context"
	"errors"
)

// ErrNotInitialized is returned when a progress toast is requested before a
// notifier has been acquired.
var ErrNotInitialized = errors.New("notifications not initialized")

// Notifier is a handle on the native toast notifier for one application id.
type Notifier interface {
	AppID() string
}

// Notification is a handle on a toast that has been shown.
type Notification interface {
	Tag() string
}

// Service is the native notification service.
type Service interface {
	// Acquire creates a notifier.
	Acquire(ctx context.Context) (Notifier, error)
	// Submit shows a toast and returns a handle that can later be retracted.
	Submit(ctx context.Context, n Notifier, p Payload, tag string) (Notification, error)
	// Retract removes a shown toast.
	Retract(ctx context.Context, n Notifier, toast Notification) error
}
