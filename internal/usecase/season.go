package usecase

import (
	"fmt"
	"time"
)

// CurrentSeason returns the 8-digit season identifier for the given date,
// e.g. "20242025". NHL seasons run October through June, so January–August
// belongs to the season that started the previous calendar year and
// September–December to the one starting this year. Always re-derived; the
// answer changes once per calendar year.
func CurrentSeason(now time.Time) string {
	year := now.Year()
	if now.Month() <= time.August {
		return fmt.Sprintf("%d%d", year-1, year)
	}
	return fmt.Sprintf("%d%d", year, year+1)
}
