package reconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/freshguard/freshd/internal/domain"
	"github.com/freshguard/freshd/internal/infra/notify"
	"github.com/freshguard/freshd/internal/observability/metrics"
)

// Reconciler syncs the backend's pending notification set to a desired
// plan. Reconciliation is idempotent state-sync, not a stream of
// individual schedule calls: the whole pending set is replaced on every
// run, so overlapping runs collapse into "last submitted plan wins".
type Reconciler struct {
	backend notify.Backend
	metrics *metrics.ScheduleMetrics
}

func NewReconciler(backend notify.Backend, scheduleMetrics *metrics.ScheduleMetrics) *Reconciler {
	return &Reconciler{
		backend: backend,
		metrics: scheduleMetrics,
	}
}

// Reconcile cancels every pending request, then submits the plan.
// Individual submission failures are logged and skipped; there is no
// retry and no abort. With no backend configured this is a no-op.
func (r *Reconciler) Reconcile(ctx context.Context, plan domain.Plan) {
	if r.backend == nil {
		return
	}

	start := time.Now()

	if err := r.backend.CancelAll(ctx); err != nil {
		slog.WarnContext(ctx, "failed to cancel pending notifications",
			slog.String("error", err.Error()),
		)
	}
	if r.metrics != nil {
		r.metrics.RecordCancel(ctx, "all")
		r.metrics.RecordRequestsPlanned(ctx, len(plan.Requests))
	}

	submitted := 0
	failed := 0
	for _, req := range plan.Requests {
		if err := r.backend.Submit(ctx, req); err != nil {
			failed++
			slog.WarnContext(ctx, "failed to submit notification request",
				slog.String("identifier", req.Identifier),
				slog.Time("fire_at", req.FireAt),
				slog.String("error", err.Error()),
			)
			if r.metrics != nil {
				r.metrics.RecordSubmission(ctx, "failed")
			}
			continue
		}
		submitted++
		if r.metrics != nil {
			r.metrics.RecordSubmission(ctx, "submitted")
		}
	}

	if r.metrics != nil {
		r.metrics.RecordReconcileDuration(ctx, time.Since(start))
	}

	slog.InfoContext(ctx, "notification plan reconciled",
		slog.Int("planned", len(plan.Requests)),
		slog.Int("submitted", submitted),
		slog.Int("failed", failed),
		slog.Duration("duration", time.Since(start)),
	)
}

// CancelForItem removes only the pending requests whose identifier is
// prefixed by the item's id. Used on single-item deletion so the full
// replan path is not always required.
func (r *Reconciler) CancelForItem(ctx context.Context, itemID string) {
	if r.backend == nil {
		return
	}

	if err := r.backend.CancelWithPrefix(ctx, itemID); err != nil {
		slog.WarnContext(ctx, "failed to cancel notifications for item",
			slog.String("item_id", itemID),
			slog.String("error", err.Error()),
		)
		return
	}

	if r.metrics != nil {
		r.metrics.RecordCancel(ctx, "item")
	}

	slog.DebugContext(ctx, "cancelled notifications for item",
		slog.String("item_id", itemID),
	)
}
