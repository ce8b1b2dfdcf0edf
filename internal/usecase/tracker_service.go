package usecase

import (
	"context"
	"fmt"

	"github.com/rdietrick/nhl-props/internal/domain/tracked"
	"github.com/rdietrick/nhl-props/internal/platform/id"
	"github.com/rdietrick/nhl-props/internal/platform/logging"
)

// TrackerService owns the tracked-player roster: the CRUD surface over
// the nhl_players table.
type TrackerService struct {
	repo   tracked.Repository
	ids    id.Generator
	logger *logging.Logger
}

func NewTrackerService(repo tracked.Repository, ids id.Generator, logger *logging.Logger) *TrackerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TrackerService{repo: repo, ids: ids, logger: logger}
}

// ListPlayers returns all tracked players sorted by name.
func (s *TrackerService) ListPlayers(ctx context.Context) ([]tracked.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "TrackerService.ListPlayers")
	defer span.End()

	players, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list players: %v", ErrDependencyUnavailable, err)
	}
	return players, nil
}

// GetPlayer fetches one tracked player by identifier.
func (s *TrackerService) GetPlayer(ctx context.Context, playerID string) (tracked.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "TrackerService.GetPlayer")
	defer span.End()

	if playerID == "" {
		return tracked.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	player, ok, err := s.repo.GetByID(ctx, playerID)
	if err != nil {
		return tracked.Player{}, fmt.Errorf("%w: get player: %v", ErrDependencyUnavailable, err)
	}
	if !ok {
		return tracked.Player{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	return player, nil
}

// CreatePlayer registers a new tracked player. Counters start at zero
// unless provided; a zero external id marks a row that cannot refresh
// until it is linked to the provider directory.
func (s *TrackerService) CreatePlayer(ctx context.Context, item tracked.Player) (tracked.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "TrackerService.CreatePlayer")
	defer span.End()

	newID, err := s.ids.NewID()
	if err != nil {
		return tracked.Player{}, fmt.Errorf("%w: generate player id: %v", ErrDependencyUnavailable, err)
	}
	item.ID = newID
	if err := item.Validate(); err != nil {
		return tracked.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return tracked.Player{}, fmt.Errorf("%w: create player: %v", ErrDependencyUnavailable, err)
	}
	s.logger.InfoContext(ctx, "tracked player created", "player_id", created.ID, "name", created.Name)
	return created, nil
}

// UpdatePlayer applies a partial update. Every successful update stamps
// updated_at, even when the payload carries no field changes.
func (s *TrackerService) UpdatePlayer(ctx context.Context, playerID string, changes tracked.Update) (tracked.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "TrackerService.UpdatePlayer")
	defer span.End()

	if playerID == "" {
		return tracked.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if err := changes.Validate(); err != nil {
		return tracked.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, ok, err := s.repo.Update(ctx, playerID, changes)
	if err != nil {
		return tracked.Player{}, fmt.Errorf("%w: update player: %v", ErrDependencyUnavailable, err)
	}
	if !ok {
		return tracked.Player{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	return updated, nil
}

// DeletePlayer removes a tracked player. Deleting an unknown id is an
// ErrNotFound, never a silent success.
func (s *TrackerService) DeletePlayer(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "TrackerService.DeletePlayer")
	defer span.End()

	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	ok, err := s.repo.Delete(ctx, playerID)
	if err != nil {
		return fmt.Errorf("%w: delete player: %v", ErrDependencyUnavailable, err)
	}
	if !ok {
		return fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	s.logger.InfoContext(ctx, "tracked player deleted", "player_id", playerID)
	return nil
}
