package postgres

import "time"

type trackedPlayerTableModel struct {
	ID               string    `db:"id"`
	Name             string    `db:"name"`
	ExternalID       int64     `db:"external_id"`
	PointsGames      int       `db:"points_games"`
	PointsTotalGames int       `db:"points_total_games"`
	ShotsThreshold   float64   `db:"shots_threshold"`
	ShotsGames       int       `db:"shots_games"`
	ShotsTotalGames  int       `db:"shots_total_games"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}
