package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rdietrick/nhl-props/internal/platform/logging"
)

// StatsService fetches current-season aggregates for a single player.
type StatsService struct {
	provider  StatsProvider
	directory *DirectoryService
	logger    *logging.Logger
	now       func() time.Time
}

func NewStatsService(provider StatsProvider, directory *DirectoryService, logger *logging.Logger) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsService{provider: provider, directory: directory, logger: logger, now: time.Now}
}

// FetchStats returns a snapshot of the player's current-season totals. A
// player with no season record yet yields a zeroed snapshot, not an error.
func (s *StatsService) FetchStats(ctx context.Context, externalID int64) (StatsSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "StatsService.FetchStats")
	defer span.End()

	if externalID <= 0 {
		return StatsSnapshot{}, fmt.Errorf("%w: external id must be positive", ErrInvalidInput)
	}

	season := CurrentSeason(s.now())
	stats, err := s.provider.FetchPlayerSeasonStats(ctx, externalID, season)
	if err != nil {
		return StatsSnapshot{}, fmt.Errorf("%w: fetch season stats for %d: %v", ErrDependencyUnavailable, externalID, err)
	}

	snapshot := StatsSnapshot{
		ExternalID: externalID,
		Name:       stats.Name,
		Season:     season,
	}
	if stats.Found {
		snapshot.GamesPlayed = stats.GamesPlayed
		snapshot.Points = stats.Points
		snapshot.Shots = stats.Shots
	}
	return snapshot, nil
}

// FetchStatsByName resolves a player through the directory and fetches
// stats for the top-ranked match. No match yields ErrNotFound.
func (s *StatsService) FetchStatsByName(ctx context.Context, name string) (StatsSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "StatsService.FetchStatsByName")
	defer span.End()

	entries := s.directory.Search(ctx, name)
	if len(entries) == 0 {
		return StatsSnapshot{}, fmt.Errorf("%w: no directory match for %q", ErrNotFound, name)
	}
	return s.FetchStats(ctx, entries[0].ExternalID)
}
