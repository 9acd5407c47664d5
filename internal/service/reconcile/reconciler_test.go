package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/freshguard/freshd/internal/domain"
)

type fakeBackend struct {
	mu         sync.Mutex
	ops        []string
	submitted  []string
	failFor    map[string]bool
	prefixes   []string
	cancelAlls int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{failFor: make(map[string]bool)}
}

func (f *fakeBackend) RequestPermission(context.Context) (bool, error) {
	return true, nil
}

func (f *fakeBackend) Submit(_ context.Context, req domain.NotificationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "submit")
	if f.failFor[req.Identifier] {
		return errors.New("gateway unavailable")
	}
	f.submitted = append(f.submitted, req.Identifier)
	return nil
}

func (f *fakeBackend) CancelAll(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "cancel_all")
	f.cancelAlls++
	return nil
}

func (f *fakeBackend) CancelWithPrefix(_ context.Context, prefix string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefixes = append(f.prefixes, prefix)
	return nil
}

func (f *fakeBackend) ClearBadge(context.Context) error {
	return nil
}

func request(id string, days int) domain.NotificationRequest {
	return domain.NotificationRequest{
		Identifier: domain.RequestIdentifier(id, days),
		ItemID:     id,
		DaysBefore: days,
		FireAt:     time.Now().Add(24 * time.Hour),
	}
}

func TestReconciler_Reconcile(t *testing.T) {
	backend := newFakeBackend()
	reconciler := NewReconciler(backend, nil)

	plan := domain.Plan{
		Requests:  []domain.NotificationRequest{request("milk", 3), request("milk", 10), request("eggs", 3)},
		PlannedAt: time.Now(),
	}
	reconciler.Reconcile(context.Background(), plan)

	if backend.cancelAlls != 1 {
		t.Fatalf("expected exactly one cancel-all, got %d", backend.cancelAlls)
	}
	if len(backend.ops) == 0 || backend.ops[0] != "cancel_all" {
		t.Errorf("expected cancel-all before any submit, ops = %v", backend.ops)
	}
	if len(backend.submitted) != 3 {
		t.Errorf("expected 3 submissions, got %d", len(backend.submitted))
	}
}

func TestReconciler_SubmitFailureDoesNotAbort(t *testing.T) {
	backend := newFakeBackend()
	backend.failFor["milk_10d"] = true
	reconciler := NewReconciler(backend, nil)

	plan := domain.Plan{
		Requests:  []domain.NotificationRequest{request("milk", 3), request("milk", 10), request("eggs", 3)},
		PlannedAt: time.Now(),
	}
	reconciler.Reconcile(context.Background(), plan)

	if len(backend.submitted) != 2 {
		t.Fatalf("expected 2 successful submissions, got %d", len(backend.submitted))
	}
	for _, id := range backend.submitted {
		if id == "milk_10d" {
			t.Errorf("failed request %q should not be recorded as submitted", id)
		}
	}
}

func TestReconciler_CancelForItem(t *testing.T) {
	backend := newFakeBackend()
	reconciler := NewReconciler(backend, nil)

	reconciler.CancelForItem(context.Background(), "milk")

	if len(backend.prefixes) != 1 || backend.prefixes[0] != "milk" {
		t.Errorf("expected one prefix cancel for %q, got %v", "milk", backend.prefixes)
	}
	if backend.cancelAlls != 0 {
		t.Errorf("item cancel must not cancel the whole pending set")
	}
}

func TestReconciler_NilBackendIsNoop(t *testing.T) {
	reconciler := NewReconciler(nil, nil)

	// Must not panic.
	reconciler.Reconcile(context.Background(), domain.Plan{})
	reconciler.CancelForItem(context.Background(), "milk")
}
