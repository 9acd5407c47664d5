package urgency

import (
	"time"

	"github.com/freshguard/freshd/internal/domain"
)

// Classifier maps an item to its traffic-light color. It is stateless;
// colors are re-derived at read time and never cached on the item.
type Classifier struct {
	loc *time.Location
}

func NewClassifier(loc *time.Location) *Classifier {
	return &Classifier{loc: loc}
}

// Classify returns the color for an item given the configured
// thresholds. The second return is false for items without an expiry
// date (no badge).
//
// Expired items always get the alert color, overriding all thresholds.
// Otherwise the first enabled threshold (ascending by days) whose days
// value is >= daysRemaining wins. Beyond every threshold the largest
// threshold's color is the safe bucket, falling back to a hardcoded
// green when no thresholds exist.
func (c *Classifier) Classify(item domain.Item, thresholds []domain.Threshold, now time.Time) (string, bool) {
	remaining, ok := item.DaysRemaining(now, c.loc)
	if !ok {
		return "", false
	}

	if remaining < 0 {
		return domain.ColorAlert, true
	}

	sorted := domain.EnabledThresholds(thresholds)

	for _, t := range sorted {
		if remaining <= t.DaysThreshold {
			return t.ColorHex, true
		}
	}

	if len(sorted) > 0 {
		return sorted[len(sorted)-1].ColorHex, true
	}
	return domain.ColorSafe, true
}
