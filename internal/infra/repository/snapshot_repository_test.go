package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/freshguard/freshd/internal/domain"
	"github.com/freshguard/freshd/internal/testutil"
)

func TestSnapshotRepository_Thresholds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.StartRedis(ctx, t)
	defer cleanup()

	repo := NewSnapshotRepository(client)

	t.Run("missing snapshot", func(t *testing.T) {
		_, err := repo.LoadThresholds(ctx)
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		want := domain.DefaultThresholds()
		want = append(want, domain.NewThreshold("#FF8800", 5, true, len(want)))

		if err := repo.SaveThresholds(ctx, want); err != nil {
			t.Fatalf("failed to save thresholds: %v", err)
		}

		got, err := repo.LoadThresholds(ctx)
		if err != nil {
			t.Fatalf("failed to load thresholds: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d thresholds, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("threshold[%d] = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("corrupt snapshot", func(t *testing.T) {
		if err := client.Set(ctx, thresholdsKey, "not json", 0).Err(); err != nil {
			t.Fatalf("failed to seed corrupt data: %v", err)
		}
		if _, err := repo.LoadThresholds(ctx); !errors.Is(err, ErrInvalidThresholdData) {
			t.Fatalf("expected ErrInvalidThresholdData, got %v", err)
		}
	})
}

func TestSnapshotRepository_Spaces(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.StartRedis(ctx, t)
	defer cleanup()

	repo := NewSnapshotRepository(client)

	t.Run("missing snapshot", func(t *testing.T) {
		_, err := repo.LoadSpaces(ctx)
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
		}
	})

	t.Run("round trip preserves items", func(t *testing.T) {
		expiry := time.Date(2025, 5, 22, 0, 0, 0, 0, time.UTC)
		fridge := domain.DefaultFridge()
		fridge.Items = []domain.Item{
			{
				ID:         "item-1",
				Name:       "Milk",
				ExpiryDate: &expiry,
				StoredDate: time.Date(2025, 5, 18, 0, 0, 0, 0, time.UTC),
				Section:    domain.SectionRefrigerated,
				Note:       "half open",
			},
			{
				ID:         "item-2",
				Name:       "Mystery jar",
				StoredDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			},
		}
		cellar := domain.NewSpace(domain.KindWineCellar, "Basement", 1)

		if err := repo.SaveSpaces(ctx, []domain.Space{fridge, cellar}); err != nil {
			t.Fatalf("failed to save spaces: %v", err)
		}

		got, err := repo.LoadSpaces(ctx)
		if err != nil {
			t.Fatalf("failed to load spaces: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 spaces, got %d", len(got))
		}

		if got[0].Kind != domain.KindFridge || len(got[0].Items) != 2 {
			t.Errorf("fridge not restored: %+v", got[0])
		}
		milk := got[0].Items[0]
		if milk.Name != "Milk" || milk.Section != domain.SectionRefrigerated || milk.Note != "half open" {
			t.Errorf("item fields not restored: %+v", milk)
		}
		if milk.ExpiryDate == nil || !milk.ExpiryDate.Equal(expiry) {
			t.Errorf("expiry date not restored: %v", milk.ExpiryDate)
		}
		if got[0].Items[1].ExpiryDate != nil {
			t.Errorf("undated item gained an expiry date: %v", got[0].Items[1].ExpiryDate)
		}
		if got[1].Kind != domain.KindWineCellar || got[1].CustomName != "Basement" {
			t.Errorf("cellar not restored: %+v", got[1])
		}
	})

	t.Run("corrupt snapshot", func(t *testing.T) {
		if err := client.Set(ctx, spacesKey, "{broken", 0).Err(); err != nil {
			t.Fatalf("failed to seed corrupt data: %v", err)
		}
		if _, err := repo.LoadSpaces(ctx); !errors.Is(err, ErrInvalidSpaceData) {
			t.Fatalf("expected ErrInvalidSpaceData, got %v", err)
		}
	})
}
