// Package notify defines the toast notification sink and its message catalog.
package notify

import "github.com/bulk-report-generator/backend/internal/models"

// Notifier surfaces transient toast messages to the user.
// Calls are fire-and-forget: no return value, no delivery guarantee.
type Notifier interface {
	Notify(n models.Notification)
}

// NopNotifier discards all notifications. Used for headless runs and tests
// that don't care about toasts.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(models.Notification) {}
