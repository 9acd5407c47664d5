package schedule

import (
	"time"

	"github.com/freshguard/freshd/internal/domain"
)

// Notifications fire at 09:00 local time on the computed day.
const fireHour = 9

// Planner derives the full notification plan from the current spaces
// and thresholds. It is pure: identical inputs and an identical "now"
// always yield an identical plan.
type Planner struct {
	lang Language
	loc  *time.Location
}

func NewPlanner(lang Language, loc *time.Location) *Planner {
	return &Planner{lang: lang, loc: loc}
}

// Plan produces one request per (expiry-dated item, enabled threshold)
// pair whose fire time is still in the future. Spaces that track stored
// duration instead of expiry contribute nothing, as do items without an
// expiry date. An empty enabled-threshold set short-circuits to an
// empty plan.
func (p *Planner) Plan(spaces []domain.Space, thresholds []domain.Threshold, now time.Time) domain.Plan {
	plan := domain.Plan{Requests: []domain.NotificationRequest{}, PlannedAt: now}

	enabled := domain.EnabledThresholds(thresholds)
	if len(enabled) == 0 {
		return plan
	}

	for si := range spaces {
		space := &spaces[si]
		if !space.UsesExpiry() {
			continue
		}

		for ii := range space.Items {
			item := &space.Items[ii]
			if item.ExpiryDate == nil {
				continue
			}

			for _, t := range enabled {
				req, ok := p.request(item, t.DaysThreshold, now)
				if ok {
					plan.Requests = append(plan.Requests, req)
				}
			}
		}
	}

	return plan
}

func (p *Planner) request(item *domain.Item, daysBefore int, now time.Time) (domain.NotificationRequest, bool) {
	expiryDay := domain.DayFloor(*item.ExpiryDate, p.loc)
	fireAt := time.Date(
		expiryDay.Year(), expiryDay.Month(), expiryDay.Day()-daysBefore,
		fireHour, 0, 0, 0, p.loc,
	)

	// Candidates whose fire time has already passed are dropped.
	if !fireAt.After(now) {
		return domain.NotificationRequest{}, false
	}

	return domain.NotificationRequest{
		Identifier: domain.RequestIdentifier(item.ID, daysBefore),
		ItemID:     item.ID,
		DaysBefore: daysBefore,
		FireAt:     fireAt,
		Title:      title(p.lang),
		Body:       body(p.lang, item.Name, daysBefore),
	}, true
}
