package ports

import (
	"context"
	"time"
)

// NotifyOptions tunes how a notification is displayed.
type NotifyOptions struct {
	// AutoCloseDelay dismisses the notification after the delay; zero keeps it
	// until the user dismisses it.
	AutoCloseDelay time.Duration
}

// Notifier renders human-visible messages for engine events. Delivery is best
// effort; the engine never inspects the outcome.
type Notifier interface {
	ShowInfo(ctx context.Context, msg string, opts NotifyOptions)
	ShowSuccess(ctx context.Context, msg string, opts NotifyOptions)
	ShowWarning(ctx context.Context, msg string, opts NotifyOptions)
	ShowError(ctx context.Context, msg string, opts NotifyOptions)
}
