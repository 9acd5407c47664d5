package notify

import (
	"context"

	"github.com/freshguard/freshd/internal/domain"
)

// Backend is the boundary to the OS-level notification delivery
// service. Delivery is unreliable and best-effort; callers must
// tolerate submission failures.
type Backend interface {
	// RequestPermission asks the backend whether reminders may be
	// delivered at all. A false result disables scheduling without
	// affecting the rest of the system.
	RequestPermission(ctx context.Context) (bool, error)

	// Submit registers one pending notification request, replacing any
	// pending request with the same identifier.
	Submit(ctx context.Context, req domain.NotificationRequest) error

	// CancelAll removes every pending request.
	CancelAll(ctx context.Context) error

	// CancelWithPrefix removes pending requests whose identifier starts
	// with the given prefix.
	CancelWithPrefix(ctx context.Context, prefix string) error

	// ClearBadge resets the application badge count.
	ClearBadge(ctx context.Context) error
}
