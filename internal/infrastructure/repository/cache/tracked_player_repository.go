package cache

import (
	"context"

	"github.com/rdietrick/nhl-props/internal/domain/tracked"
	basecache "github.com/rdietrick/nhl-props/internal/platform/cache"
)

const trackedListKey = "tracked:list"

// TrackedPlayerRepository is a read-through cache in front of another
// tracked.Repository. Reads populate the cache; writes invalidate the
// keys they touch so refresh passes are visible immediately.
type TrackedPlayerRepository struct {
	next  tracked.Repository
	cache *basecache.Store
}

func NewTrackedPlayerRepository(next tracked.Repository, cache *basecache.Store) *TrackedPlayerRepository {
	return &TrackedPlayerRepository{next: next, cache: cache}
}

func (r *TrackedPlayerRepository) List(ctx context.Context) ([]tracked.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, trackedListKey, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]tracked.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]tracked.Player)
	return append([]tracked.Player(nil), items...), nil
}

func (r *TrackedPlayerRepository) GetByID(ctx context.Context, id string) (tracked.Player, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, trackedIDKey(id), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return tracked.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

func (r *TrackedPlayerRepository) Create(ctx context.Context, item tracked.Player) (tracked.Player, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return tracked.Player{}, err
	}

	r.cache.Delete(ctx, trackedListKey)
	r.cache.Delete(ctx, trackedIDKey(created.ID))
	return created, nil
}

func (r *TrackedPlayerRepository) Update(ctx context.Context, id string, changes tracked.Update) (tracked.Player, bool, error) {
	updated, ok, err := r.next.Update(ctx, id, changes)
	if err != nil || !ok {
		return updated, ok, err
	}

	r.cache.Delete(ctx, trackedListKey)
	r.cache.Delete(ctx, trackedIDKey(id))
	return updated, true, nil
}

func (r *TrackedPlayerRepository) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := r.next.Delete(ctx, id)
	if err != nil || !ok {
		return ok, err
	}

	r.cache.Delete(ctx, trackedListKey)
	r.cache.Delete(ctx, trackedIDKey(id))
	return true, nil
}

type cachedPlayerByID struct {
	value  tracked.Player
	exists bool
}

func trackedIDKey(id string) string {
	return "tracked:id:" + id
}
