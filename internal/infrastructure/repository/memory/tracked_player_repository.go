package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rdietrick/nhl-props/internal/domain/tracked"
)

// TrackedPlayerRepository is an in-memory tracked.Repository used by
// tests and local development without a database.
type TrackedPlayerRepository struct {
	mu    sync.RWMutex
	items map[string]tracked.Player
	now   func() time.Time
}

func NewTrackedPlayerRepository() *TrackedPlayerRepository {
	return &TrackedPlayerRepository{
		items: make(map[string]tracked.Player),
		now:   time.Now,
	}
}

func (r *TrackedPlayerRepository) List(_ context.Context) ([]tracked.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tracked.Player, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *TrackedPlayerRepository) GetByID(_ context.Context, id string) (tracked.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *TrackedPlayerRepository) Create(_ context.Context, item tracked.Player) (tracked.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	r.items[item.ID] = item
	return item, nil
}

func (r *TrackedPlayerRepository) Update(_ context.Context, id string, changes tracked.Update) (tracked.Player, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return tracked.Player{}, false, nil
	}

	if changes.Name != nil {
		item.Name = *changes.Name
	}
	if changes.ExternalID != nil {
		item.ExternalID = *changes.ExternalID
	}
	if changes.PointsGames != nil {
		item.PointsGames = *changes.PointsGames
	}
	if changes.PointsTotalGames != nil {
		item.PointsTotalGames = *changes.PointsTotalGames
	}
	if changes.ShotsThreshold != nil {
		item.ShotsThreshold = *changes.ShotsThreshold
	}
	if changes.ShotsGames != nil {
		item.ShotsGames = *changes.ShotsGames
	}
	if changes.ShotsTotalGames != nil {
		item.ShotsTotalGames = *changes.ShotsTotalGames
	}
	// Empty updates still bump the timestamp, matching the SQL layer.
	item.UpdatedAt = r.now().UTC()

	r.items[id] = item
	return item, true, nil
}

func (r *TrackedPlayerRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}
