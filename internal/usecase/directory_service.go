package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rdietrick/nhl-props/internal/platform/cache"
	"github.com/rdietrick/nhl-props/internal/platform/logging"
)

const (
	rosterCacheKey       = "nhle:roster"
	minSearchQueryLength = 2
)

// match ranking tiers, lower sorts first.
const (
	matchExact = iota
	matchPrefix
	matchSubstring
)

// DirectoryService answers player-name searches against the provider's
// full roster. The roster is fetched at most once per process via the
// shared cache; concurrent first searches collapse onto a single
// provider call.
type DirectoryService struct {
	provider StatsProvider
	store    *cache.Store
	logger   *logging.Logger
}

func NewDirectoryService(provider StatsProvider, store *cache.Store, logger *logging.Logger) *DirectoryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DirectoryService{provider: provider, store: store, logger: logger}
}

// Search returns directory entries matching the query, ranked exact
// matches first, then prefix matches, then substring matches, each tier
// alphabetical by name. Queries shorter than two characters return no
// results without touching the provider. Provider failures degrade to an
// empty result; searching never surfaces an error to the caller.
func (s *DirectoryService) Search(ctx context.Context, query string) []DirectoryEntry {
	ctx, span := startUsecaseSpan(ctx, "DirectoryService.Search")
	defer span.End()

	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < minSearchQueryLength {
		return nil
	}

	roster, err := s.roster(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "directory search degraded, roster unavailable", "error", err)
		return nil
	}
	return rankDirectoryMatches(roster, trimmed)
}

// Refresh drops the cached roster so the next search fetches it anew.
func (s *DirectoryService) Refresh(ctx context.Context) {
	s.store.Delete(ctx, rosterCacheKey)
}

func (s *DirectoryService) roster(ctx context.Context) ([]DirectoryEntry, error) {
	value, err := s.store.GetOrLoad(ctx, rosterCacheKey, func(ctx context.Context) (any, error) {
		entries, err := s.provider.FetchRoster(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: fetch roster: %v", ErrDependencyUnavailable, err)
		}
		if len(entries) == 0 {
			// An empty roster is a provider hiccup; caching it would
			// blank the directory for the rest of the process.
			return nil, fmt.Errorf("%w: provider returned empty roster", ErrDependencyUnavailable)
		}
		s.logger.InfoContext(ctx, "roster directory loaded", "players", len(entries))
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	roster, ok := value.([]DirectoryEntry)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected roster cache payload", ErrDependencyUnavailable)
	}
	return roster, nil
}

func rankDirectoryMatches(roster []DirectoryEntry, query string) []DirectoryEntry {
	needle := strings.ToLower(query)

	type ranked struct {
		entry DirectoryEntry
		name  string
		tier  int
	}
	matches := make([]ranked, 0, 8)
	for _, entry := range roster {
		name := strings.ToLower(entry.Name)
		switch {
		case name == needle:
			matches = append(matches, ranked{entry: entry, name: name, tier: matchExact})
		case strings.HasPrefix(name, needle):
			matches = append(matches, ranked{entry: entry, name: name, tier: matchPrefix})
		case strings.Contains(name, needle):
			matches = append(matches, ranked{entry: entry, name: name, tier: matchSubstring})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].tier != matches[j].tier {
			return matches[i].tier < matches[j].tier
		}
		return matches[i].name < matches[j].name
	})

	out := make([]DirectoryEntry, len(matches))
	for i, m := range matches {
		out[i] = m.entry
	}
	return out
}
