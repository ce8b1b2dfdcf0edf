package usecase

import (
	"context"
	"sync"
	"sync/atomic"
)

// stubProvider is a hand-rolled StatsProvider for service tests.
type stubProvider struct {
	roster      []DirectoryEntry
	rosterErr   error
	rosterCalls atomic.Int32

	stats       map[int64]ProviderSeasonStats
	statsErrFor map[int64]error
	statsCalls  atomic.Int32

	mu         sync.Mutex
	lastSeason string
}

func (p *stubProvider) FetchRoster(context.Context) ([]DirectoryEntry, error) {
	p.rosterCalls.Add(1)
	if p.rosterErr != nil {
		return nil, p.rosterErr
	}
	return append([]DirectoryEntry(nil), p.roster...), nil
}

func (p *stubProvider) FetchPlayerSeasonStats(_ context.Context, externalID int64, season string) (ProviderSeasonStats, error) {
	p.statsCalls.Add(1)
	p.mu.Lock()
	p.lastSeason = season
	p.mu.Unlock()
	if err, ok := p.statsErrFor[externalID]; ok {
		return ProviderSeasonStats{}, err
	}
	if stats, ok := p.stats[externalID]; ok {
		return stats, nil
	}
	return ProviderSeasonStats{ExternalID: externalID}, nil
}
