package domain

import (
	"fmt"
	"time"
)

// NotificationRequest is one concrete reminder to be delivered by the
// notification backend.
type NotificationRequest struct {
	Identifier string    `json:"identifier"`
	ItemID     string    `json:"item_id"`
	DaysBefore int       `json:"days_before"`
	FireAt     time.Time `json:"fire_at"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
}

// Plan is the full set of notification requests derived from the
// current spaces and thresholds at a point in time.
type Plan struct {
	Requests  []NotificationRequest `json:"requests"`
	PlannedAt time.Time             `json:"planned_at"`
}

// RequestIdentifier builds the deterministic identifier for an
// item/threshold pair, e.g. "<item-id>_3d". Determinism guarantees
// idempotent replacement and at most one pending request per pair.
func RequestIdentifier(itemID string, daysBefore int) string {
	return fmt.Sprintf("%s_%dd", itemID, daysBefore)
}
