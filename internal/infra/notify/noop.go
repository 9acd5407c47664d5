package notify

import (
	"context"

	"github.com/freshguard/freshd/internal/domain"
)

// NoopBackend is used when no gateway is configured or permission was
// denied. Scheduling degrades to "no reminders fire"; item data and
// color classification are unaffected.
type NoopBackend struct{}

func NewNoopBackend() *NoopBackend {
	return &NoopBackend{}
}

func (*NoopBackend) RequestPermission(context.Context) (bool, error) {
	return false, nil
}

func (*NoopBackend) Submit(context.Context, domain.NotificationRequest) error {
	return nil
}

func (*NoopBackend) CancelAll(context.Context) error {
	return nil
}

func (*NoopBackend) CancelWithPrefix(context.Context, string) error {
	return nil
}

func (*NoopBackend) ClearBadge(context.Context) error {
	return nil
}
