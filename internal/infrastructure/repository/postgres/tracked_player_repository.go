package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/rdietrick/nhl-props/internal/domain/tracked"
	qb "github.com/rdietrick/nhl-props/internal/platform/querybuilder"
)

const trackedPlayersTable = "nhl_players"

var trackedPlayerSelectColumns = []string{
	"id",
	"name",
	"external_id",
	"points_games",
	"points_total_games",
	"shots_threshold",
	"shots_games",
	"shots_total_games",
	"created_at",
	"updated_at",
}

// TrackedPlayerRepository persists tracked players in the nhl_players
// table. It implements tracked.Repository.
type TrackedPlayerRepository struct {
	db *sqlx.DB
}

func NewTrackedPlayerRepository(db *sqlx.DB) *TrackedPlayerRepository {
	return &TrackedPlayerRepository{db: db}
}

func (r *TrackedPlayerRepository) List(ctx context.Context) ([]tracked.Player, error) {
	query, args, err := qb.Select(trackedPlayerSelectColumns...).From(trackedPlayersTable).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select tracked players query: %w", err)
	}

	var rows []trackedPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select tracked players: %w", err)
	}

	out := make([]tracked.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapTrackedPlayerRow(row))
	}
	return out, nil
}

func (r *TrackedPlayerRepository) GetByID(ctx context.Context, id string) (tracked.Player, bool, error) {
	query, args, err := qb.Select(trackedPlayerSelectColumns...).From(trackedPlayersTable).
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return tracked.Player{}, false, fmt.Errorf("build select tracked player query: %w", err)
	}

	var row trackedPlayerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tracked.Player{}, false, nil
		}
		return tracked.Player{}, false, fmt.Errorf("select tracked player: %w", err)
	}
	return mapTrackedPlayerRow(row), true, nil
}

func (r *TrackedPlayerRepository) Create(ctx context.Context, item tracked.Player) (tracked.Player, error) {
	query, args, err := qb.InsertInto(trackedPlayersTable).
		Columns("id", "name", "external_id", "points_games", "points_total_games",
			"shots_threshold", "shots_games", "shots_total_games").
		Values(item.ID, item.Name, item.ExternalID, item.PointsGames, item.PointsTotalGames,
			item.ShotsThreshold, item.ShotsGames, item.ShotsTotalGames).
		Suffix("RETURNING " + selectColumnList()).
		ToSQL()
	if err != nil {
		return tracked.Player{}, fmt.Errorf("build insert tracked player query: %w", err)
	}

	var row trackedPlayerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return tracked.Player{}, fmt.Errorf("insert tracked player: %w", err)
	}
	return mapTrackedPlayerRow(row), nil
}

func (r *TrackedPlayerRepository) Update(ctx context.Context, id string, changes tracked.Update) (tracked.Player, bool, error) {
	builder := qb.Update(trackedPlayersTable).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id))

	if changes.Name != nil {
		builder.Set("name", *changes.Name)
	}
	if changes.ExternalID != nil {
		builder.Set("external_id", *changes.ExternalID)
	}
	if changes.PointsGames != nil {
		builder.Set("points_games", *changes.PointsGames)
	}
	if changes.PointsTotalGames != nil {
		builder.Set("points_total_games", *changes.PointsTotalGames)
	}
	if changes.ShotsThreshold != nil {
		builder.Set("shots_threshold", *changes.ShotsThreshold)
	}
	if changes.ShotsGames != nil {
		builder.Set("shots_games", *changes.ShotsGames)
	}
	if changes.ShotsTotalGames != nil {
		builder.Set("shots_total_games", *changes.ShotsTotalGames)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return tracked.Player{}, false, fmt.Errorf("build update tracked player query: %w", err)
	}
	query += " RETURNING " + selectColumnList()

	var row trackedPlayerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tracked.Player{}, false, nil
		}
		return tracked.Player{}, false, fmt.Errorf("update tracked player: %w", err)
	}
	return mapTrackedPlayerRow(row), true, nil
}

func (r *TrackedPlayerRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.DeleteFrom(trackedPlayersTable).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete tracked player query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete tracked player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete tracked player rows affected: %w", err)
	}
	return affected > 0, nil
}

func selectColumnList() string {
	return strings.Join(trackedPlayerSelectColumns, ", ")
}

func mapTrackedPlayerRow(row trackedPlayerTableModel) tracked.Player {
	return tracked.Player{
		ID:               row.ID,
		Name:             row.Name,
		ExternalID:       row.ExternalID,
		PointsGames:      row.PointsGames,
		PointsTotalGames: row.PointsTotalGames,
		ShotsThreshold:   row.ShotsThreshold,
		ShotsGames:       row.ShotsGames,
		ShotsTotalGames:  row.ShotsTotalGames,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}
