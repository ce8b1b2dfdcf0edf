package tracked

import (
	"fmt"
	"strings"
	"time"
)

// AllowedShotsThresholds are the over/under lines a player can be tracked
// against. Zero means no shots line is tracked.
var AllowedShotsThresholds = map[float64]struct{}{
	0:   {},
	1.5: {},
	2.5: {},
}

// Player is a tracked NHL player row. PointsGames and ShotsGames hold season
// totals (total points, total shots on goal); the *TotalGames fields hold the
// games-played denominators. ExternalID zero marks legacy rows entered by
// hand before the provider id column existed.
type Player struct {
	ID               string
	Name             string
	ExternalID       int64
	PointsGames      int
	PointsTotalGames int
	ShotsThreshold   float64
	ShotsGames       int
	ShotsTotalGames  int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.ExternalID < 0 {
		return fmt.Errorf("player external id cannot be negative")
	}
	if p.PointsGames < 0 || p.PointsTotalGames < 0 || p.ShotsGames < 0 || p.ShotsTotalGames < 0 {
		return fmt.Errorf("player stat counters cannot be negative")
	}
	if _, ok := AllowedShotsThresholds[p.ShotsThreshold]; !ok {
		return fmt.Errorf("invalid shots threshold: %v", p.ShotsThreshold)
	}

	return nil
}

// PointsPerGame returns 0 when no games have been played.
func (p Player) PointsPerGame() float64 {
	return perGame(p.PointsGames, p.PointsTotalGames)
}

// ShotsPerGame returns 0 when no games have been played.
func (p Player) ShotsPerGame() float64 {
	return perGame(p.ShotsGames, p.ShotsTotalGames)
}

func perGame(total, games int) float64 {
	if games <= 0 {
		return 0
	}
	return float64(total) / float64(games)
}

// Update carries a partial edit; nil fields are left untouched. The row id
// and creation timestamp are immutable and updated_at is stamped by the
// repository on every write.
type Update struct {
	Name             *string
	ExternalID       *int64
	PointsGames      *int
	PointsTotalGames *int
	ShotsThreshold   *float64
	ShotsGames       *int
	ShotsTotalGames  *int
}

func (u Update) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return fmt.Errorf("player name cannot be blank")
	}
	if u.ExternalID != nil && *u.ExternalID < 0 {
		return fmt.Errorf("player external id cannot be negative")
	}
	for _, counter := range []*int{u.PointsGames, u.PointsTotalGames, u.ShotsGames, u.ShotsTotalGames} {
		if counter != nil && *counter < 0 {
			return fmt.Errorf("player stat counters cannot be negative")
		}
	}
	if u.ShotsThreshold != nil {
		if _, ok := AllowedShotsThresholds[*u.ShotsThreshold]; !ok {
			return fmt.Errorf("invalid shots threshold: %v", *u.ShotsThreshold)
		}
	}

	return nil
}

func (u Update) Empty() bool {
	return u.Name == nil &&
		u.ExternalID == nil &&
		u.PointsGames == nil &&
		u.PointsTotalGames == nil &&
		u.ShotsThreshold == nil &&
		u.ShotsGames == nil &&
		u.ShotsTotalGames == nil
}
