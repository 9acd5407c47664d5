package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/freshguard/freshd/internal/domain"
	"github.com/freshguard/freshd/internal/service/reconcile"
	"github.com/freshguard/freshd/internal/service/schedule"
)

// Store owns the mutable Spaces and Thresholds collections. Every
// mutation validates its input, applies the change, persists the
// affected snapshot before returning, and then triggers a background
// reconcile of the notification backend.
//
// Mutations are serialized through a single mutex. A freshly triggered
// reconcile may race with an in-flight one; since every reconcile
// replaces the entire pending set, the last submitted plan wins and
// rapid successive edits converge. That transient window is accepted.
type Store struct {
	mu         sync.Mutex
	spaces     []domain.Space
	thresholds []domain.Threshold

	repo       domain.SnapshotRepository
	planner    *schedule.Planner
	reconciler *reconcile.Reconciler
	loc        *time.Location
	isPro      bool
	now        func() time.Time
}

func New(
	repo domain.SnapshotRepository,
	planner *schedule.Planner,
	reconciler *reconcile.Reconciler,
	loc *time.Location,
	isPro bool,
) *Store {
	return &Store{
		repo:       repo,
		planner:    planner,
		reconciler: reconciler,
		loc:        loc,
		isPro:      isPro,
		now:        time.Now,
	}
}

// Load restores both snapshots from the repository. Missing or
// unreadable snapshots silently fall back to the defaults: the three
// canonical thresholds and a single default fridge.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	thresholds, err := s.repo.LoadThresholds(ctx)
	if err != nil {
		slog.WarnContext(ctx, "loading threshold snapshot failed, using defaults",
			slog.String("error", err.Error()),
		)
		thresholds = domain.DefaultThresholds()
	}
	s.thresholds = thresholds

	spaces, err := s.repo.LoadSpaces(ctx)
	if err != nil || len(spaces) == 0 {
		if err != nil {
			slog.WarnContext(ctx, "loading space snapshot failed, using defaults",
				slog.String("error", err.Error()),
			)
		}
		spaces = []domain.Space{domain.DefaultFridge()}
	}
	s.spaces = spaces

	slog.InfoContext(ctx, "store loaded",
		slog.Int("spaces", len(s.spaces)),
		slog.Int("thresholds", len(s.thresholds)),
	)
}

// AddItem appends a new item to a space. The name must be non-empty
// after trimming whitespace.
func (s *Store) AddItem(ctx context.Context, spaceID, name string, expiryDate *time.Time, section domain.Section, note string) (domain.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Item{}, domain.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	space := s.findSpace(spaceID)
	if space == nil {
		return domain.Item{}, domain.ErrSpaceNotFound
	}

	item := domain.NewItem(name, expiryDate, section, note)
	space.Items = append(space.Items, item)

	if err := s.persistSpaces(ctx); err != nil {
		return domain.Item{}, err
	}
	s.triggerReconcile()
	return item, nil
}

// UpdateItem replaces the whole item record by id.
func (s *Store) UpdateItem(ctx context.Context, spaceID string, item domain.Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return domain.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	space := s.findSpace(spaceID)
	if space == nil {
		return domain.ErrSpaceNotFound
	}

	idx := space.FindItem(item.ID)
	if idx < 0 {
		return domain.ErrItemNotFound
	}
	space.Items[idx] = item

	if err := s.persistSpaces(ctx); err != nil {
		return err
	}
	s.triggerReconcile()
	return nil
}

// DeleteItem removes an item and cancels only its pending requests;
// the full replan path is not required for a pure removal.
func (s *Store) DeleteItem(ctx context.Context, spaceID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	space := s.findSpace(spaceID)
	if space == nil {
		return domain.ErrSpaceNotFound
	}

	idx := space.FindItem(itemID)
	if idx < 0 {
		return domain.ErrItemNotFound
	}
	space.Items = append(space.Items[:idx], space.Items[idx+1:]...)

	if err := s.persistSpaces(ctx); err != nil {
		return err
	}
	go s.reconciler.CancelForItem(context.WithoutCancel(ctx), itemID)
	return nil
}

// AddSpace creates a new space. Every kind except the default fridge
// requires the pro capability.
func (s *Store) AddSpace(ctx context.Context, kind domain.SpaceKind, customName string) (domain.Space, error) {
	if !kind.Valid() {
		return domain.Space{}, domain.ErrUnknownKind
	}
	if domain.KindCapabilities(kind).RequiresPro && !s.isPro {
		return domain.Space{}, domain.ErrProRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	space := domain.NewSpace(kind, strings.TrimSpace(customName), len(s.spaces))
	s.spaces = append(s.spaces, space)

	if err := s.persistSpaces(ctx); err != nil {
		return domain.Space{}, err
	}
	return space, nil
}

// DeleteSpace removes a space. Deleting the last remaining space is
// rejected. Notifications for all contained items are cancelled first.
func (s *Store) DeleteSpace(ctx context.Context, spaceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.spaces) <= 1 {
		return domain.ErrLastSpace
	}

	idx := -1
	for i := range s.spaces {
		if s.spaces[i].ID == spaceID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrSpaceNotFound
	}

	for _, item := range s.spaces[idx].Items {
		go s.reconciler.CancelForItem(context.WithoutCancel(ctx), item.ID)
	}
	s.spaces = append(s.spaces[:idx], s.spaces[idx+1:]...)

	return s.persistSpaces(ctx)
}

// RenameSpace sets a space's custom display name.
func (s *Store) RenameSpace(ctx context.Context, spaceID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	space := s.findSpace(spaceID)
	if space == nil {
		return domain.ErrSpaceNotFound
	}
	space.CustomName = strings.TrimSpace(name)

	return s.persistSpaces(ctx)
}

// RecolorSpace sets a space's display color.
func (s *Store) RecolorSpace(ctx context.Context, spaceID, colorHex string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	space := s.findSpace(spaceID)
	if space == nil {
		return domain.ErrSpaceNotFound
	}
	space.ColorHex = colorHex

	return s.persistSpaces(ctx)
}

// AddThreshold appends a custom threshold. Custom thresholds are a pro
// feature; the list stays sorted ascending by days.
func (s *Store) AddThreshold(ctx context.Context, colorHex string, days int) (domain.Threshold, error) {
	if days < 1 {
		return domain.Threshold{}, domain.ErrInvalidDays
	}
	if !s.isPro {
		return domain.Threshold{}, domain.ErrProRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	threshold := domain.NewThreshold(colorHex, days, true, len(s.thresholds))
	s.thresholds = append(s.thresholds, threshold)
	domain.SortThresholdsByDays(s.thresholds)

	if err := s.persistThresholds(ctx); err != nil {
		return domain.Threshold{}, err
	}
	s.triggerReconcile()
	return threshold, nil
}

// RemoveThreshold deletes a custom threshold. The three canonical
// thresholds cannot be removed.
func (s *Store) RemoveThreshold(ctx context.Context, thresholdID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findThreshold(thresholdID)
	if idx < 0 {
		return domain.ErrThresholdNotFound
	}
	if !s.thresholds[idx].IsCustom {
		return domain.ErrThresholdProtected
	}
	s.thresholds = append(s.thresholds[:idx], s.thresholds[idx+1:]...)

	if err := s.persistThresholds(ctx); err != nil {
		return err
	}
	s.triggerReconcile()
	return nil
}

// SetThresholdEnabled toggles reminder delivery for one threshold.
func (s *Store) SetThresholdEnabled(ctx context.Context, thresholdID string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findThreshold(thresholdID)
	if idx < 0 {
		return domain.ErrThresholdNotFound
	}
	s.thresholds[idx].NotificationEnabled = enabled

	if err := s.persistThresholds(ctx); err != nil {
		return err
	}
	s.triggerReconcile()
	return nil
}

// SetThresholdDays changes a threshold's day count.
func (s *Store) SetThresholdDays(ctx context.Context, thresholdID string, days int) error {
	if days < 1 {
		return domain.ErrInvalidDays
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findThreshold(thresholdID)
	if idx < 0 {
		return domain.ErrThresholdNotFound
	}
	s.thresholds[idx].DaysThreshold = days

	if err := s.persistThresholds(ctx); err != nil {
		return err
	}
	s.triggerReconcile()
	return nil
}

// Spaces returns a deep copy of the current spaces.
func (s *Store) Spaces() []domain.Space {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySpaces(s.spaces)
}

// Space returns a deep copy of one space by id.
func (s *Store) Space(spaceID string) (domain.Space, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	space := s.findSpace(spaceID)
	if space == nil {
		return domain.Space{}, domain.ErrSpaceNotFound
	}
	return copySpace(*space), nil
}

// Thresholds returns a copy of the current thresholds.
func (s *Store) Thresholds() []domain.Threshold {
	s.mu.Lock()
	defer s.mu.Unlock()

	thresholds := make([]domain.Threshold, len(s.thresholds))
	copy(thresholds, s.thresholds)
	return thresholds
}

// SortedItems returns a space's items in display order, optionally
// filtered by section. Expiry-tracking spaces sort ascending by days
// remaining with undated items last; duration-tracking spaces sort
// descending by days stored. Both sorts are stable, so insertion order
// is preserved among equal keys.
func (s *Store) SortedItems(spaceID string, section domain.Section) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	space := s.findSpace(spaceID)
	if space == nil {
		return nil, domain.ErrSpaceNotFound
	}

	items := make([]domain.Item, 0, len(space.Items))
	for _, item := range space.Items {
		if section != "" && item.Section != section {
			continue
		}
		items = append(items, item)
	}

	now := s.now()
	if space.UsesExpiry() {
		sort.SliceStable(items, func(i, j int) bool {
			return s.remainingOrMax(&items[i], now) < s.remainingOrMax(&items[j], now)
		})
	} else {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].DaysStored(now, s.loc) > items[j].DaysStored(now, s.loc)
		})
	}

	return items, nil
}

// UrgentItemCount counts items across all expiry-tracking spaces with
// at most the given number of days remaining, expired items included.
func (s *Store) UrgentItemCount(withinDays int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	count := 0
	for i := range s.spaces {
		if !s.spaces[i].UsesExpiry() {
			continue
		}
		for j := range s.spaces[i].Items {
			remaining, ok := s.spaces[i].Items[j].DaysRemaining(now, s.loc)
			if ok && remaining <= withinDays {
				count++
			}
		}
	}
	return count
}

func (s *Store) remainingOrMax(item *domain.Item, now time.Time) int {
	remaining, ok := item.DaysRemaining(now, s.loc)
	if !ok {
		// Items with no expiry date sort last.
		return int(^uint(0) >> 1)
	}
	return remaining
}

func (s *Store) findSpace(spaceID string) *domain.Space {
	for i := range s.spaces {
		if s.spaces[i].ID == spaceID {
			return &s.spaces[i]
		}
	}
	return nil
}

func (s *Store) findThreshold(thresholdID string) int {
	for i := range s.thresholds {
		if s.thresholds[i].ID == thresholdID {
			return i
		}
	}
	return -1
}

func (s *Store) persistSpaces(ctx context.Context) error {
	if err := s.repo.SaveSpaces(ctx, s.spaces); err != nil {
		return fmt.Errorf("persisting spaces: %w", err)
	}
	return nil
}

func (s *Store) persistThresholds(ctx context.Context) error {
	if err := s.repo.SaveThresholds(ctx, s.thresholds); err != nil {
		return fmt.Errorf("persisting thresholds: %w", err)
	}
	return nil
}

// triggerReconcile computes the plan from the current state under the
// lock, then hands it to the reconciler in the background. The mutation
// that triggered it does not wait for backend delivery.
func (s *Store) triggerReconcile() {
	plan := s.planner.Plan(copySpaces(s.spaces), s.thresholds, s.now())
	go s.reconciler.Reconcile(context.Background(), plan)
}

func copySpaces(spaces []domain.Space) []domain.Space {
	out := make([]domain.Space, len(spaces))
	for i, space := range spaces {
		out[i] = copySpace(space)
	}
	return out
}

func copySpace(space domain.Space) domain.Space {
	items := make([]domain.Item, len(space.Items))
	copy(items, space.Items)
	space.Items = items
	return space
}
