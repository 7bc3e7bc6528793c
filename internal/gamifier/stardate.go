package gamifier

import (
	"fmt"
	"time"
)

// Stardate formats t the way the LCARS header shows it: thousands per year
// since 2000 plus the fraction of the year elapsed, one decimal.
func Stardate(t time.Time) string {
	sd := float64(t.Year()-2000)*1000 + float64(t.YearDay())/365.25*1000
	return fmt.Sprintf("%.1f", sd)
}
