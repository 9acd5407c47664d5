package domain

import (
	"time"

	"github.com/google/uuid"
)

// Item is a tracked perishable unit. ExpiryDate is nil for items that
// only track stored duration (wine cellar contents).
type Item struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	StoredDate time.Time  `json:"stored_date"`
	Section    Section    `json:"section,omitempty"`
	Note       string     `json:"note,omitempty"`
}

func NewItem(name string, expiryDate *time.Time, section Section, note string) Item {
	return Item{
		ID:         uuid.NewString(),
		Name:       name,
		ExpiryDate: expiryDate,
		StoredDate: time.Now(),
		Section:    section,
		Note:       note,
	}
}

// DaysStored returns the number of whole days since the item was
// stored, never negative.
func (it *Item) DaysStored(now time.Time, loc *time.Location) int {
	days := DaysBetween(it.StoredDate, now, loc)
	if days < 0 {
		return 0
	}
	return days
}

// DaysRemaining returns the signed number of whole days until expiry.
// The second return is false when the item has no expiry date.
func (it *Item) DaysRemaining(now time.Time, loc *time.Location) (int, bool) {
	if it.ExpiryDate == nil {
		return 0, false
	}
	return DaysBetween(now, *it.ExpiryDate, loc), true
}

// IsExpired reports whether the item's expiry date is in the past at
// day granularity. An item expiring today is not expired.
func (it *Item) IsExpired(now time.Time, loc *time.Location) bool {
	remaining, ok := it.DaysRemaining(now, loc)
	return ok && remaining < 0
}
