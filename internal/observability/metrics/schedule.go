package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	scheduleMeterName = "schedule.reconciler"
)

type ScheduleMetrics struct {
	requestsPlanned   metric.Int64Counter
	submissions       metric.Int64Counter
	cancels           metric.Int64Counter
	reconcileDuration metric.Float64Histogram
}

func NewScheduleMetrics() (*ScheduleMetrics, error) {
	meter := otel.Meter(scheduleMeterName)

	requestsPlanned, err := meter.Int64Counter(
		"freshd_notifications_planned_total",
		metric.WithDescription("Total number of notification requests produced by the planner"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	submissions, err := meter.Int64Counter(
		"freshd_notification_submissions_total",
		metric.WithDescription("Total number of notification submissions to the backend"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	cancels, err := meter.Int64Counter(
		"freshd_notification_cancels_total",
		metric.WithDescription("Total number of cancel operations issued to the backend"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	reconcileDuration, err := meter.Float64Histogram(
		"freshd_reconcile_duration_seconds",
		metric.WithDescription("Time spent replacing the pending notification set"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
		),
	)
	if err != nil {
		return nil, err
	}

	return &ScheduleMetrics{
		requestsPlanned:   requestsPlanned,
		submissions:       submissions,
		cancels:           cancels,
		reconcileDuration: reconcileDuration,
	}, nil
}

func (m *ScheduleMetrics) RecordRequestsPlanned(ctx context.Context, count int) {
	m.requestsPlanned.Add(ctx, int64(count))
}

func (m *ScheduleMetrics) RecordSubmission(ctx context.Context, outcome string) {
	m.submissions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *ScheduleMetrics) RecordCancel(ctx context.Context, scope string) {
	m.cancels.Add(ctx, 1, metric.WithAttributes(
		attribute.String("scope", scope),
	))
}

func (m *ScheduleMetrics) RecordReconcileDuration(ctx context.Context, duration time.Duration) {
	m.reconcileDuration.Record(ctx, duration.Seconds())
}
