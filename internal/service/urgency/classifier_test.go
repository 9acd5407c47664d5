package urgency

import (
	"testing"
	"time"

	"github.com/freshguard/freshd/internal/domain"
)

func defaultLights() []domain.Threshold {
	return []domain.Threshold{
		{ID: "red", ColorHex: domain.ColorAlert, DaysThreshold: 3, NotificationEnabled: true},
		{ID: "yellow", ColorHex: domain.ColorWarn, DaysThreshold: 10, NotificationEnabled: true},
		{ID: "green", ColorHex: domain.ColorSafe, DaysThreshold: 30, NotificationEnabled: true},
	}
}

func itemExpiring(now time.Time, days int) domain.Item {
	expiry := now.AddDate(0, 0, days)
	return domain.Item{ID: "item-1", Name: "Milk", ExpiryDate: &expiry, StoredDate: now}
}

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier(time.UTC)
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		item       domain.Item
		thresholds []domain.Threshold
		wantColor  string
		wantOK     bool
	}{
		{
			name:       "no expiry date has no color",
			item:       domain.Item{ID: "item-1", Name: "Wine", StoredDate: now},
			thresholds: defaultLights(),
			wantOK:     false,
		},
		{
			name:       "expired overrides all thresholds",
			item:       itemExpiring(now, -1),
			thresholds: defaultLights(),
			wantColor:  domain.ColorAlert,
			wantOK:     true,
		},
		{
			name:       "two days remaining hits the red bucket",
			item:       itemExpiring(now, 2),
			thresholds: defaultLights(),
			wantColor:  domain.ColorAlert,
			wantOK:     true,
		},
		{
			name:       "boundary day belongs to the tighter bucket",
			item:       itemExpiring(now, 3),
			thresholds: defaultLights(),
			wantColor:  domain.ColorAlert,
			wantOK:     true,
		},
		{
			name:       "seven days remaining is yellow",
			item:       itemExpiring(now, 7),
			thresholds: defaultLights(),
			wantColor:  domain.ColorWarn,
			wantOK:     true,
		},
		{
			name:       "beyond every threshold keeps the safe bucket color",
			item:       itemExpiring(now, 90),
			thresholds: defaultLights(),
			wantColor:  domain.ColorSafe,
			wantOK:     true,
		},
		{
			name:       "no thresholds falls back to hardcoded green",
			item:       itemExpiring(now, 5),
			thresholds: nil,
			wantColor:  domain.ColorSafe,
			wantOK:     true,
		},
		{
			name: "disabled thresholds are ignored",
			item: itemExpiring(now, 2),
			thresholds: []domain.Threshold{
				{ID: "red", ColorHex: domain.ColorAlert, DaysThreshold: 3, NotificationEnabled: false},
				{ID: "yellow", ColorHex: domain.ColorWarn, DaysThreshold: 10, NotificationEnabled: true},
			},
			wantColor: domain.ColorWarn,
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color, ok := classifier.Classify(tt.item, tt.thresholds, now)
			if ok != tt.wantOK {
				t.Fatalf("Classify() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && color != tt.wantColor {
				t.Errorf("Classify() = %q, want %q", color, tt.wantColor)
			}
		})
	}
}

// Increasing days remaining must never produce a more urgent color than
// a smaller value did (ignoring the expired override).
func TestClassifier_Monotonic(t *testing.T) {
	classifier := NewClassifier(time.UTC)
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	thresholds := defaultLights()

	rank := map[string]int{
		domain.ColorAlert: 0,
		domain.ColorWarn:  1,
		domain.ColorSafe:  2,
	}

	prev := -1
	for days := 0; days <= 40; days++ {
		color, ok := classifier.Classify(itemExpiring(now, days), thresholds, now)
		if !ok {
			t.Fatalf("Classify() unexpectedly returned no color at %d days", days)
		}
		r, known := rank[color]
		if !known {
			t.Fatalf("unexpected color %q at %d days", color, days)
		}
		if r < prev {
			t.Errorf("urgency increased from rank %d to %d at %d days remaining", prev, r, days)
		}
		prev = r
	}
}
