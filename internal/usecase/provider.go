package usecase

import "context"

// DirectoryEntry is one player in the provider's roster directory.
type DirectoryEntry struct {
	ExternalID int64  `json:"external_id"`
	Name       string `json:"name"`
}

// ProviderSeasonStats is the provider's season aggregate for one player.
// Found reports whether the provider had a record for the requested season;
// a missing record is a valid "not yet active" state, not an error.
type ProviderSeasonStats struct {
	ExternalID  int64
	Name        string
	GamesPlayed int
	Points      int
	Shots       int
	Found       bool
}

// StatsProvider is the pluggable boundary to the remote statistics API.
// Swapping provider endpoint shapes touches only external/, never the
// services built on top of this interface.
type StatsProvider interface {
	FetchRoster(ctx context.Context) ([]DirectoryEntry, error)
	FetchPlayerSeasonStats(ctx context.Context, externalID int64, season string) (ProviderSeasonStats, error)
}

// StatsSnapshot is a fresh per-fetch aggregate. It is never persisted
// directly; only its fields are copied into a tracked-player update.
type StatsSnapshot struct {
	ExternalID  int64  `json:"external_id"`
	Name        string `json:"name"`
	Season      string `json:"season"`
	GamesPlayed int    `json:"games_played"`
	Points      int    `json:"points"`
	Shots       int    `json:"shots"`
}
