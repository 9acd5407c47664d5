package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freshguard/freshd/internal/domain"
)

const (
	thresholdsKey = "freshguard:thresholds"
	spacesKey     = "freshguard:spaces"
)

type thresholdRecord struct {
	ID                  string `json:"id"`
	ColorHex            string `json:"color_hex"`
	DaysThreshold       int    `json:"days_threshold"`
	NotificationEnabled bool   `json:"notification_enabled"`
	IsCustom            bool   `json:"is_custom"`
	SortOrder           int    `json:"sort_order"`
}

type itemRecord struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	StoredDate time.Time  `json:"stored_date"`
	Section    string     `json:"section,omitempty"`
	Note       string     `json:"note,omitempty"`
}

type spaceRecord struct {
	ID         string       `json:"id"`
	Kind       string       `json:"kind"`
	CustomName string       `json:"custom_name,omitempty"`
	ColorHex   string       `json:"color_hex"`
	SortOrder  int          `json:"sort_order"`
	Items      []itemRecord `json:"items"`
}

type snapshotRepository struct {
	client *redis.Client
}

func NewSnapshotRepository(client *redis.Client) domain.SnapshotRepository {
	return &snapshotRepository{
		client: client,
	}
}

func (r *snapshotRepository) SaveThresholds(ctx context.Context, thresholds []domain.Threshold) error {
	records := make([]thresholdRecord, 0, len(thresholds))
	for _, t := range thresholds {
		records = append(records, thresholdRecord{
			ID:                  t.ID,
			ColorHex:            t.ColorHex,
			DaysThreshold:       t.DaysThreshold,
			NotificationEnabled: t.NotificationEnabled,
			IsCustom:            t.IsCustom,
			SortOrder:           t.SortOrder,
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return ErrInvalidThresholdData
	}

	return r.client.Set(ctx, thresholdsKey, data, 0).Err()
}

func (r *snapshotRepository) LoadThresholds(ctx context.Context) ([]domain.Threshold, error) {
	data, err := r.client.Get(ctx, thresholdsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, err
	}

	var records []thresholdRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, ErrInvalidThresholdData
	}

	thresholds := make([]domain.Threshold, 0, len(records))
	for _, rec := range records {
		thresholds = append(thresholds, domain.Threshold{
			ID:                  rec.ID,
			ColorHex:            rec.ColorHex,
			DaysThreshold:       rec.DaysThreshold,
			NotificationEnabled: rec.NotificationEnabled,
			IsCustom:            rec.IsCustom,
			SortOrder:           rec.SortOrder,
		})
	}

	return thresholds, nil
}

func (r *snapshotRepository) SaveSpaces(ctx context.Context, spaces []domain.Space) error {
	records := make([]spaceRecord, 0, len(spaces))
	for _, s := range spaces {
		items := make([]itemRecord, 0, len(s.Items))
		for _, it := range s.Items {
			items = append(items, itemRecord{
				ID:         it.ID,
				Name:       it.Name,
				ExpiryDate: it.ExpiryDate,
				StoredDate: it.StoredDate,
				Section:    string(it.Section),
				Note:       it.Note,
			})
		}
		records = append(records, spaceRecord{
			ID:         s.ID,
			Kind:       s.Kind.String(),
			CustomName: s.CustomName,
			ColorHex:   s.ColorHex,
			SortOrder:  s.SortOrder,
			Items:      items,
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return ErrInvalidSpaceData
	}

	return r.client.Set(ctx, spacesKey, data, 0).Err()
}

func (r *snapshotRepository) LoadSpaces(ctx context.Context) ([]domain.Space, error) {
	data, err := r.client.Get(ctx, spacesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, err
	}

	var records []spaceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, ErrInvalidSpaceData
	}

	spaces := make([]domain.Space, 0, len(records))
	for _, rec := range records {
		items := make([]domain.Item, 0, len(rec.Items))
		for _, it := range rec.Items {
			items = append(items, domain.Item{
				ID:         it.ID,
				Name:       it.Name,
				ExpiryDate: it.ExpiryDate,
				StoredDate: it.StoredDate,
				Section:    domain.Section(it.Section),
				Note:       it.Note,
			})
		}
		spaces = append(spaces, domain.Space{
			ID:         rec.ID,
			Kind:       domain.SpaceKind(rec.Kind),
			CustomName: rec.CustomName,
			ColorHex:   rec.ColorHex,
			SortOrder:  rec.SortOrder,
			Items:      items,
		})
	}

	return spaces, nil
}
