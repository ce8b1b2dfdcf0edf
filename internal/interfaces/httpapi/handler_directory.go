package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rdietrick/nhl-props/internal/usecase"
)

type directoryEntryDTO struct {
	ExternalID int64  `json:"external_id"`
	Name       string `json:"name"`
}

// SearchDirectory answers typeahead queries against the provider roster.
// Short queries and provider outages both come back as an empty list so
// the search box never breaks.
func (h *Handler) SearchDirectory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchDirectory")
	defer span.End()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	entries := h.directoryService.Search(ctx, query)

	items := make([]directoryEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, directoryEntryDTO{ExternalID: entry.ExternalID, Name: entry.Name})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// RefreshDirectory drops the cached roster so the next search refetches it.
func (h *Handler) RefreshDirectory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshDirectory")
	defer span.End()

	h.directoryService.Refresh(ctx)
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "refreshed"})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStats")
	defer span.End()

	rawID := strings.TrimSpace(r.PathValue("externalID"))
	externalID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || externalID <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: external id must be a positive integer", usecase.ErrInvalidInput))
		return
	}

	snapshot, err := h.statsService.FetchStats(ctx, externalID)
	if err != nil {
		h.logger.WarnContext(ctx, "fetch stats failed", "external_id", externalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshot)
}
