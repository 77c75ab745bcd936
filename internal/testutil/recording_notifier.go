// Package testutil provides test doubles shared across packages.
package testutil

import (
	"sync"

	"github.com/bulk-report-generator/backend/internal/models"
)

// RecordingNotifier captures notifications for assertions in tests.
type RecordingNotifier struct {
	mu            sync.Mutex
	notifications []models.Notification
}

// NewRecordingNotifier creates an empty recording notifier.
func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

// Notify implements notify.Notifier.
func (r *RecordingNotifier) Notify(n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

// Notifications returns a copy of everything recorded so far.
func (r *RecordingNotifier) Notifications() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// Count returns the number of recorded notifications.
func (r *RecordingNotifier) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notifications)
}

// Reset clears all recorded notifications.
func (r *RecordingNotifier) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = nil
}
