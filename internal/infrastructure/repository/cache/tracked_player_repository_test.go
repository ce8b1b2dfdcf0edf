package cache

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/rdietrick/nhl-props/internal/domain/tracked"
	"github.com/rdietrick/nhl-props/internal/infrastructure/repository/memory"
	basecache "github.com/rdietrick/nhl-props/internal/platform/cache"
)

// countingRepository wraps the in-memory repository to observe read traffic.
type countingRepository struct {
	*memory.TrackedPlayerRepository
	listCalls atomic.Int32
	getCalls  atomic.Int32
}

func (r *countingRepository) List(ctx context.Context) ([]tracked.Player, error) {
	r.listCalls.Add(1)
	return r.TrackedPlayerRepository.List(ctx)
}

func (r *countingRepository) GetByID(ctx context.Context, id string) (tracked.Player, bool, error) {
	r.getCalls.Add(1)
	return r.TrackedPlayerRepository.GetByID(ctx, id)
}

func newCachedRepo() (*TrackedPlayerRepository, *countingRepository) {
	next := &countingRepository{TrackedPlayerRepository: memory.NewTrackedPlayerRepository()}
	return NewTrackedPlayerRepository(next, basecache.NewStore(0)), next
}

func TestTrackedPlayerRepository_ListIsCached(t *testing.T) {
	t.Parallel()

	repo, next := newCachedRepo()
	if _, err := repo.Create(t.Context(), tracked.Player{ID: "p1", Name: "Auston Matthews"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 3; i++ {
		items, err := repo.List(t.Context())
		if err != nil {
			t.Fatalf("list %d: %v", i, err)
		}
		if len(items) != 1 {
			t.Fatalf("list %d: unexpected items %+v", i, items)
		}
	}
	if calls := next.listCalls.Load(); calls != 1 {
		t.Fatalf("backing list called %d times, want 1", calls)
	}
}

func TestTrackedPlayerRepository_WritesInvalidate(t *testing.T) {
	t.Parallel()

	repo, next := newCachedRepo()
	if _, err := repo.Create(t.Context(), tracked.Player{ID: "p1", Name: "Auston Matthews"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := repo.List(t.Context()); err != nil {
		t.Fatalf("warm list: %v", err)
	}

	games := 41
	if _, ok, err := repo.Update(t.Context(), "p1", tracked.Update{PointsTotalGames: &games}); err != nil || !ok {
		t.Fatalf("update: ok=%t err=%v", ok, err)
	}

	items, err := repo.List(t.Context())
	if err != nil {
		t.Fatalf("list after update: %v", err)
	}
	if items[0].PointsTotalGames != 41 {
		t.Fatalf("stale list after update: %+v", items[0])
	}
	if calls := next.listCalls.Load(); calls != 2 {
		t.Fatalf("backing list called %d times, want 2", calls)
	}

	got, ok, err := repo.GetByID(t.Context(), "p1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%t err=%v", ok, err)
	}
	if got.PointsTotalGames != 41 {
		t.Fatalf("stale row after update: %+v", got)
	}

	if _, err := repo.Delete(t.Context(), "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := repo.GetByID(t.Context(), "p1"); ok {
		t.Fatal("deleted row still served")
	}
}

func TestTrackedPlayerRepository_GetByIDCachesMisses(t *testing.T) {
	t.Parallel()

	repo, next := newCachedRepo()

	for i := 0; i < 2; i++ {
		if _, ok, err := repo.GetByID(t.Context(), "missing"); err != nil || ok {
			t.Fatalf("get %d: ok=%t err=%v", i, ok, err)
		}
	}
	if calls := next.getCalls.Load(); calls != 1 {
		t.Fatalf("backing get called %d times, want 1", calls)
	}
}
