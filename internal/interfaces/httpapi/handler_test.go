package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/mock"

	"github.com/rdietrick/nhl-props/internal/domain/tracked"
	"github.com/rdietrick/nhl-props/internal/infrastructure/repository/memory"
	usecasemock "github.com/rdietrick/nhl-props/internal/mocks/usecase"
	"github.com/rdietrick/nhl-props/internal/platform/cache"
	"github.com/rdietrick/nhl-props/internal/platform/logging"
	"github.com/rdietrick/nhl-props/internal/usecase"
)

type stubIDs struct{ n int }

func (g *stubIDs) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("id-%d", g.n), nil
}

type envelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var out envelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	if out.APIVersion != googleAPIVersion {
		t.Fatalf("unexpected api version: %s", out.APIVersion)
	}
	return out
}

func newTestRouter(t *testing.T, provider usecase.StatsProvider) (http.Handler, *memory.TrackedPlayerRepository) {
	t.Helper()

	logger := logging.NewNop()
	repo := memory.NewTrackedPlayerRepository()
	directory := usecase.NewDirectoryService(provider, cache.NewStore(0), logger)
	stats := usecase.NewStatsService(provider, directory, logger)
	tracker := usecase.NewTrackerService(repo, &stubIDs{}, logger)
	refresh := usecase.NewRefreshService(repo, stats, logger, 1)

	handler := NewHandler(tracker, directory, stats, refresh, logger)
	return NewRouter(handler, logger, []string{"*"}), repo
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, usecasemock.NewStatsProvider(t))
	rec := doRequest(t, router, http.MethodGet, "/healthz", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	out := decodeBody[map[string]string](t, rec)
	if out.Data["status"] != "ok" {
		t.Fatalf("unexpected health payload: %+v", out.Data)
	}
}

func TestRouter_PlayerCRUD(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, usecasemock.NewStatsProvider(t))

	rec := doRequest(t, router, http.MethodPost, "/v1/players",
		`{"name":"Auston Matthews","external_id":8479318,"shots_threshold":2.5}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[playerDTO](t, rec)
	if created.Data.ID != "id-1" || created.Data.Name != "Auston Matthews" {
		t.Fatalf("unexpected created player: %+v", created.Data)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/players", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: unexpected status %d", rec.Code)
	}
	listed := decodeBody[[]playerDTO](t, rec)
	if len(listed.Data) != 1 || listed.Data[0].ExternalID != 8479318 {
		t.Fatalf("unexpected player list: %+v", listed.Data)
	}

	rec = doRequest(t, router, http.MethodPatch, "/v1/players/id-1", `{"shots_threshold":1.5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodeBody[playerDTO](t, rec)
	if updated.Data.ShotsThreshold != 1.5 || updated.Data.Name != "Auston Matthews" {
		t.Fatalf("unexpected updated player: %+v", updated.Data)
	}

	rec = doRequest(t, router, http.MethodDelete, "/v1/players/id-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: unexpected status %d", rec.Code)
	}
	deleted := decodeBody[map[string]string](t, rec)
	if deleted.Data["status"] != "deleted" {
		t.Fatalf("unexpected delete payload: %+v", deleted.Data)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/players/id-1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: unexpected status %d", rec.Code)
	}
	missing := decodeBody[any](t, rec)
	if missing.Error == nil || missing.Error.Errors[0].Reason != "notFound" {
		t.Fatalf("unexpected error body: %+v", missing.Error)
	}
}

func TestRouter_CreatePlayer_Validation(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, usecasemock.NewStatsProvider(t))

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"external_id":1}`},
		{"bad shots threshold", `{"name":"X","shots_threshold":3.3}`},
		{"negative counter", `{"name":"X","points_games":-2}`},
		{"malformed json", `{"name":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/v1/players", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
			}
			out := decodeBody[any](t, rec)
			if out.Error == nil || out.Error.Errors[0].Reason != "invalidInput" {
				t.Fatalf("unexpected error body: %+v", out.Error)
			}
		})
	}
}

func TestRouter_RefreshPlayers(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	router, repo := newTestRouter(t, provider)

	if _, err := repo.Create(t.Context(), tracked.Player{ID: "p1", Name: "Auston Matthews", ExternalID: 8479318}); err != nil {
		t.Fatalf("seed player: %v", err)
	}
	if _, err := repo.Create(t.Context(), tracked.Player{ID: "p2", Name: "Brady Tkachuk"}); err != nil {
		t.Fatalf("seed player: %v", err)
	}

	provider.
		On("FetchPlayerSeasonStats", mock.Anything, int64(8479318), mock.AnythingOfType("string")).
		Return(usecase.ProviderSeasonStats{
			ExternalID:  8479318,
			Name:        "Auston Matthews",
			GamesPlayed: 41,
			Points:      52,
			Shots:       180,
			Found:       true,
		}, nil).
		Once()

	rec := doRequest(t, router, http.MethodPost, "/v1/players/refresh", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	out := decodeBody[usecase.RefreshSummary](t, rec)
	if out.Data.Total != 2 || out.Data.Updated != 1 || out.Data.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", out.Data)
	}
	if out.Data.Outcomes[1].Reason != usecase.ReasonMissingProviderID {
		t.Fatalf("unexpected outcome: %+v", out.Data.Outcomes[1])
	}

	stored, ok, err := repo.GetByID(t.Context(), "p1")
	if err != nil || !ok {
		t.Fatalf("reload player: ok=%t err=%v", ok, err)
	}
	if stored.PointsGames != 52 || stored.PointsTotalGames != 41 {
		t.Fatalf("refresh not persisted: %+v", stored)
	}
}

func TestRouter_SearchDirectory(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	router, _ := newTestRouter(t, provider)

	provider.
		On("FetchRoster", mock.Anything).
		Return([]usecase.DirectoryEntry{
			{ExternalID: 8478398, Name: "Kyle Connor"},
			{ExternalID: 8484144, Name: "Connor Bedard"},
		}, nil).
		Once()

	rec := doRequest(t, router, http.MethodGet, "/v1/directory/search?q=connor", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("search: unexpected status %d", rec.Code)
	}
	out := decodeBody[[]directoryEntryDTO](t, rec)
	if len(out.Data) != 2 || out.Data[0].Name != "Connor Bedard" {
		t.Fatalf("unexpected search result: %+v", out.Data)
	}

	// Cached roster: a second search must not refetch (Once above enforces it).
	rec = doRequest(t, router, http.MethodGet, "/v1/directory/search?q=kyle", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("second search: unexpected status %d", rec.Code)
	}
}

func TestRouter_SearchDirectory_ShortQuery(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, usecasemock.NewStatsProvider(t))

	rec := doRequest(t, router, http.MethodGet, "/v1/directory/search?q=k", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	out := decodeBody[[]directoryEntryDTO](t, rec)
	if len(out.Data) != 0 {
		t.Fatalf("expected empty result for short query, got %+v", out.Data)
	}
}

func TestRouter_RefreshDirectory(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	router, _ := newTestRouter(t, provider)

	provider.
		On("FetchRoster", mock.Anything).
		Return([]usecase.DirectoryEntry{{ExternalID: 1, Name: "Kyle Connor"}}, nil).
		Twice()

	doRequest(t, router, http.MethodGet, "/v1/directory/search?q=connor", "")

	rec := doRequest(t, router, http.MethodPost, "/v1/directory/refresh", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: unexpected status %d", rec.Code)
	}
	out := decodeBody[map[string]string](t, rec)
	if out.Data["status"] != "refreshed" {
		t.Fatalf("unexpected refresh payload: %+v", out.Data)
	}

	doRequest(t, router, http.MethodGet, "/v1/directory/search?q=connor", "")
}

func TestRouter_GetStats(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	router, _ := newTestRouter(t, provider)

	provider.
		On("FetchPlayerSeasonStats", mock.Anything, int64(8478402), mock.AnythingOfType("string")).
		Return(usecase.ProviderSeasonStats{
			ExternalID:  8478402,
			Name:        "Connor McDavid",
			GamesPlayed: 40,
			Points:      62,
			Shots:       130,
			Found:       true,
		}, nil).
		Once()

	rec := doRequest(t, router, http.MethodGet, "/v1/stats/8478402", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	out := decodeBody[usecase.StatsSnapshot](t, rec)
	if out.Data.ExternalID != 8478402 || out.Data.Points != 62 {
		t.Fatalf("unexpected snapshot: %+v", out.Data)
	}
}

func TestRouter_GetStats_InvalidID(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, usecasemock.NewStatsProvider(t))

	for _, path := range []string{"/v1/stats/abc", "/v1/stats/0", "/v1/stats/-3"} {
		rec := doRequest(t, router, http.MethodGet, path, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: unexpected status %d", path, rec.Code)
		}
	}
}

func TestRouter_GetStats_ProviderUnavailable(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewStatsProvider(t)
	router, _ := newTestRouter(t, provider)

	provider.
		On("FetchPlayerSeasonStats", mock.Anything, int64(8478402), mock.AnythingOfType("string")).
		Return(usecase.ProviderSeasonStats{}, fmt.Errorf("provider down")).
		Once()

	rec := doRequest(t, router, http.MethodGet, "/v1/stats/8478402", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	out := decodeBody[any](t, rec)
	if out.Error == nil || out.Error.Errors[0].Reason != "dependencyUnavailable" {
		t.Fatalf("unexpected error body: %+v", out.Error)
	}
}
