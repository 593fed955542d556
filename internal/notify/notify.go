// Package notify defines the notification boundary and its Telegram
// implementation.
package notify

import "context"

// Notifier delivers one formatted alert message to the configured target.
type Notifier interface {
	Send(ctx context.Context, text string) error
}
