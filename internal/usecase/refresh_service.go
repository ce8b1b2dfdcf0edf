package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/rdietrick/nhl-props/internal/domain/tracked"
	"github.com/rdietrick/nhl-props/internal/platform/logging"
)

// Refresh failure reasons reported per player. Refresh never aborts on a
// single player; each outcome stands alone.
const (
	ReasonMissingProviderID   = "missing provider identifier"
	ReasonStatsFetchFailed    = "could not fetch stats"
	ReasonNoGamesThisSeason   = "no games played this season"
	ReasonStorageUpdateFailed = "storage update failed"
	ReasonTaskNotScheduled    = "refresh task not scheduled"
)

// RefreshOutcome records what happened to one tracked player during a
// refresh pass.
type RefreshOutcome struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Updated  bool   `json:"updated"`
	Reason   string `json:"reason,omitempty"`
}

// RefreshSummary aggregates a full refresh pass. Outcomes preserve the
// stored list order regardless of worker scheduling.
type RefreshSummary struct {
	Total    int              `json:"total"`
	Updated  int              `json:"updated"`
	Failed   int              `json:"failed"`
	Outcomes []RefreshOutcome `json:"outcomes"`
}

// RefreshService walks every tracked player and overwrites its stat
// counters with fresh current-season totals from the provider.
type RefreshService struct {
	repo       tracked.Repository
	stats      *StatsService
	logger     *logging.Logger
	maxWorkers int
}

// NewRefreshService builds a refresh orchestrator. maxWorkers below one
// falls back to one, which keeps provider calls strictly sequential.
func NewRefreshService(repo tracked.Repository, stats *StatsService, logger *logging.Logger, maxWorkers int) *RefreshService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &RefreshService{repo: repo, stats: stats, logger: logger, maxWorkers: maxWorkers}
}

// RefreshAll fetches current-season stats for every tracked player and
// persists them. Players without a provider identifier, players the
// provider has no games for, and per-player fetch or storage failures are
// reported in the summary; none of them stop the pass.
func (s *RefreshService) RefreshAll(ctx context.Context) (RefreshSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "RefreshService.RefreshAll")
	defer span.End()

	players, err := s.repo.List(ctx)
	if err != nil {
		return RefreshSummary{}, fmt.Errorf("%w: list players for refresh: %v", ErrDependencyUnavailable, err)
	}

	summary := RefreshSummary{
		Total:    len(players),
		Outcomes: make([]RefreshOutcome, len(players)),
	}
	if len(players) == 0 {
		return summary, nil
	}

	workers := s.maxWorkers
	if workers > len(players) {
		workers = len(players)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return RefreshSummary{}, fmt.Errorf("%w: start refresh pool: %v", ErrDependencyUnavailable, err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range players {
		i := i
		player := players[i]
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			summary.Outcomes[i] = s.refreshOne(ctx, player)
		})
		if submitErr != nil {
			wg.Done()
			summary.Outcomes[i] = RefreshOutcome{
				PlayerID: player.ID,
				Name:     player.Name,
				Reason:   ReasonTaskNotScheduled,
			}
			s.logger.ErrorContext(ctx, "refresh task submit failed", "player_id", player.ID, "error", submitErr)
		}
	}
	wg.Wait()

	for _, outcome := range summary.Outcomes {
		if outcome.Updated {
			summary.Updated++
		} else {
			summary.Failed++
		}
	}
	s.logger.InfoContext(ctx, "refresh pass complete",
		"total", summary.Total, "updated", summary.Updated, "failed", summary.Failed)
	return summary, nil
}

func (s *RefreshService) refreshOne(ctx context.Context, player tracked.Player) RefreshOutcome {
	outcome := RefreshOutcome{PlayerID: player.ID, Name: player.Name}

	if player.ExternalID <= 0 {
		outcome.Reason = ReasonMissingProviderID
		return outcome
	}

	snapshot, err := s.stats.FetchStats(ctx, player.ExternalID)
	if err != nil {
		s.logger.WarnContext(ctx, "stats fetch failed during refresh",
			"player_id", player.ID, "external_id", player.ExternalID, "error", err)
		outcome.Reason = ReasonStatsFetchFailed
		return outcome
	}
	if snapshot.GamesPlayed == 0 {
		outcome.Reason = ReasonNoGamesThisSeason
		return outcome
	}

	changes := tracked.Update{
		PointsGames:      &snapshot.Points,
		PointsTotalGames: &snapshot.GamesPlayed,
		ShotsGames:       &snapshot.Shots,
		ShotsTotalGames:  &snapshot.GamesPlayed,
	}
	if _, ok, err := s.repo.Update(ctx, player.ID, changes); err != nil || !ok {
		if err != nil {
			s.logger.ErrorContext(ctx, "storage update failed during refresh",
				"player_id", player.ID, "error", err)
		}
		outcome.Reason = ReasonStorageUpdateFailed
		return outcome
	}

	outcome.Updated = true
	return outcome
}
