package domain

import (
	"sort"

	"github.com/google/uuid"
)

// Canonical traffic-light colors.
const (
	ColorAlert = "#FF3B30"
	ColorWarn  = "#FFCC00"
	ColorSafe  = "#34C759"
)

// Threshold is a (days, color) rule used both for on-screen urgency
// coloring and for deriving reminder lead times. Non-custom thresholds
// cannot be deleted.
type Threshold struct {
	ID                  string `json:"id"`
	ColorHex            string `json:"color_hex"`
	DaysThreshold       int    `json:"days_threshold"`
	NotificationEnabled bool   `json:"notification_enabled"`
	IsCustom            bool   `json:"is_custom"`
	SortOrder           int    `json:"sort_order"`
}

func NewThreshold(colorHex string, days int, custom bool, sortOrder int) Threshold {
	return Threshold{
		ID:                  uuid.NewString(),
		ColorHex:            colorHex,
		DaysThreshold:       days,
		NotificationEnabled: true,
		IsCustom:            custom,
		SortOrder:           sortOrder,
	}
}

// DefaultThresholds returns the three canonical thresholds: 3 days red,
// 10 days yellow, 30 days green.
func DefaultThresholds() []Threshold {
	return []Threshold{
		NewThreshold(ColorAlert, 3, false, 0),
		NewThreshold(ColorWarn, 10, false, 1),
		NewThreshold(ColorSafe, 30, false, 2),
	}
}

// SortThresholdsByDays sorts ascending by days threshold, stable so
// equal-day thresholds keep their relative order.
func SortThresholdsByDays(thresholds []Threshold) {
	sort.SliceStable(thresholds, func(i, j int) bool {
		return thresholds[i].DaysThreshold < thresholds[j].DaysThreshold
	})
}

// EnabledThresholds returns the thresholds with notifications enabled,
// sorted ascending by days.
func EnabledThresholds(thresholds []Threshold) []Threshold {
	enabled := make([]Threshold, 0, len(thresholds))
	for _, t := range thresholds {
		if t.NotificationEnabled {
			enabled = append(enabled, t)
		}
	}
	SortThresholdsByDays(enabled)
	return enabled
}
