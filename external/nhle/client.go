package nhle

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rdietrick/nhl-props/internal/platform/logging"
	"github.com/rdietrick/nhl-props/internal/platform/resilience"
	"github.com/rdietrick/nhl-props/internal/usecase"
)

const (
	defaultBaseURL    = "https://statsapi.web.nhl.com/api/v1"
	rosterExpandParam = "team.roster"
	statsExpandParam  = "person.stats"
	statsTypeParam    = "statsSingleSeason"
	maxResponseBytes  = 6 << 20
)

var errNHLETransient = crerr.New("nhle transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the NHL statistics API. It satisfies
// usecase.StatsProvider; retries, circuit breaking, and request
// de-duplication all live here so the services above stay oblivious.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchRoster returns every rostered player across all teams, sorted by
// name then id so repeated fetches are stable.
func (c *Client) FetchRoster(ctx context.Context) ([]usecase.DirectoryEntry, error) {
	query := map[string]string{"expand": rosterExpandParam}

	var envelope teamsEnvelope
	if err := c.doJSON(ctx, "/teams", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch teams roster: %w", err)
	}

	byID := make(map[int64]usecase.DirectoryEntry, 800)
	for _, team := range envelope.Teams {
		for _, slot := range team.Roster.Roster {
			person := slot.Person
			name := strings.TrimSpace(person.FullName)
			if person.ID <= 0 || name == "" {
				continue
			}
			byID[person.ID] = usecase.DirectoryEntry{ExternalID: person.ID, Name: name}
		}
	}

	out := make([]usecase.DirectoryEntry, 0, len(byID))
	for _, entry := range byID {
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ExternalID < out[j].ExternalID
	})
	return out, nil
}

// FetchPlayerSeasonStats returns the player's aggregate for one season.
// A player with no split for the season comes back with Found false;
// that is a normal state for players yet to dress this season.
func (c *Client) FetchPlayerSeasonStats(ctx context.Context, externalID int64, season string) (usecase.ProviderSeasonStats, error) {
	if externalID <= 0 {
		return usecase.ProviderSeasonStats{}, fmt.Errorf("external id must be greater than zero")
	}
	season = strings.TrimSpace(season)
	if season == "" {
		return usecase.ProviderSeasonStats{}, fmt.Errorf("season is required")
	}

	path := fmt.Sprintf("/people/%d", externalID)
	query := map[string]string{
		"expand": statsExpandParam,
		"stats":  statsTypeParam,
		"season": season,
	}

	var envelope peopleEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return usecase.ProviderSeasonStats{}, fmt.Errorf("fetch person stats external_id=%d season=%s: %w", externalID, season, err)
	}
	if len(envelope.People) == 0 {
		return usecase.ProviderSeasonStats{}, fmt.Errorf("provider has no person with id %d", externalID)
	}

	person := envelope.People[0]
	out := usecase.ProviderSeasonStats{
		ExternalID: externalID,
		Name:       strings.TrimSpace(person.FullName),
	}
	split, ok := seasonSplit(person.Stats, season)
	if !ok {
		return out, nil
	}
	out.Found = true
	out.GamesPlayed = split.Stat.Games
	out.Points = split.Stat.Points
	out.Shots = split.Stat.Shots
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "nhle circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: hockey data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isNHLECircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errNHLETransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errNHLETransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errNHLETransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "nhle request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isNHLECircuitFailure(err error) bool {
	return stderrors.Is(err, errNHLETransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) <= limit {
		return body
	}
	return body[:limit] + "..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
