package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/rdietrick/nhl-props/internal/domain/tracked"
)

type createPlayerRequest struct {
	Name             string  `json:"name" validate:"required,max=200"`
	ExternalID       int64   `json:"external_id" validate:"omitempty,min=0"`
	PointsGames      int     `json:"points_games" validate:"omitempty,min=0"`
	PointsTotalGames int     `json:"points_total_games" validate:"omitempty,min=0"`
	ShotsThreshold   float64 `json:"shots_threshold" validate:"omitempty,oneof=0 1.5 2.5"`
	ShotsGames       int     `json:"shots_games" validate:"omitempty,min=0"`
	ShotsTotalGames  int     `json:"shots_total_games" validate:"omitempty,min=0"`
}

type updatePlayerRequest struct {
	Name             *string  `json:"name" validate:"omitempty,max=200"`
	ExternalID       *int64   `json:"external_id" validate:"omitempty,min=0"`
	PointsGames      *int     `json:"points_games" validate:"omitempty,min=0"`
	PointsTotalGames *int     `json:"points_total_games" validate:"omitempty,min=0"`
	ShotsThreshold   *float64 `json:"shots_threshold" validate:"omitempty,oneof=0 1.5 2.5"`
	ShotsGames       *int     `json:"shots_games" validate:"omitempty,min=0"`
	ShotsTotalGames  *int     `json:"shots_total_games" validate:"omitempty,min=0"`
}

type playerDTO struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ExternalID       int64     `json:"external_id"`
	PointsGames      int       `json:"points_games"`
	PointsTotalGames int       `json:"points_total_games"`
	PointsPerGame    float64   `json:"points_per_game"`
	ShotsThreshold   float64   `json:"shots_threshold"`
	ShotsGames       int       `json:"shots_games"`
	ShotsTotalGames  int       `json:"shots_total_games"`
	ShotsPerGame     float64   `json:"shots_per_game"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func playerToDTO(item tracked.Player) playerDTO {
	return playerDTO{
		ID:               item.ID,
		Name:             item.Name,
		ExternalID:       item.ExternalID,
		PointsGames:      item.PointsGames,
		PointsTotalGames: item.PointsTotalGames,
		PointsPerGame:    item.PointsPerGame(),
		ShotsThreshold:   item.ShotsThreshold,
		ShotsGames:       item.ShotsGames,
		ShotsTotalGames:  item.ShotsTotalGames,
		ShotsPerGame:     item.ShotsPerGame(),
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.trackerService.ListPlayers(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var payload createPlayerRequest
	if err := h.decodeRequest(ctx, w, r, &payload); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.trackerService.CreatePlayer(ctx, tracked.Player{
		Name:             strings.TrimSpace(payload.Name),
		ExternalID:       payload.ExternalID,
		PointsGames:      payload.PointsGames,
		PointsTotalGames: payload.PointsTotalGames,
		ShotsThreshold:   payload.ShotsThreshold,
		ShotsGames:       payload.ShotsGames,
		ShotsTotalGames:  payload.ShotsTotalGames,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "name", payload.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(created))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	item, err := h.trackerService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))

	var payload updatePlayerRequest
	if err := h.decodeRequest(ctx, w, r, &payload); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.trackerService.UpdatePlayer(ctx, playerID, tracked.Update{
		Name:             payload.Name,
		ExternalID:       payload.ExternalID,
		PointsGames:      payload.PointsGames,
		PointsTotalGames: payload.PointsTotalGames,
		ShotsThreshold:   payload.ShotsThreshold,
		ShotsGames:       payload.ShotsGames,
		ShotsTotalGames:  payload.ShotsTotalGames,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(updated))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	if err := h.trackerService.DeletePlayer(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": playerID, "status": "deleted"})
}

func (h *Handler) RefreshPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshPlayers")
	defer span.End()

	summary, err := h.refreshService.RefreshAll(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}
