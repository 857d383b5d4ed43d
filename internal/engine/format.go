package engine

import (
	"fmt"
	"time"

	"github.com/tartampluch/showtime/internal/config"
)

// clampMillis converts d to whole milliseconds, treating negatives as zero.
func clampMillis(d time.Duration) int64 {
	ms := d.Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}

// splitDuration returns minutes, seconds and truncated centiseconds.
func splitDuration(d time.Duration) (minutes, seconds, centis int64) {
	ms := clampMillis(d)
	totalSeconds := ms / 1000
	return totalSeconds / 60, totalSeconds % 60, (ms % 1000) / 10
}

// FormatMain renders the main display as mm:ss.cc.
// fixedMillis replaces the centiseconds only when illusion is on, the clock
// is stopped and a token is present (non-empty).
func FormatMain(d time.Duration, illusion, running bool, fixedMillis string) string {
	minutes, seconds, centis := splitDuration(d)
	field := fmt.Sprintf(config.FormatCentis, centis)
	if illusion && !running && fixedMillis != "" {
		field = fixedMillis
	}
	return fmt.Sprintf(config.FormatDisplay, minutes, seconds, field)
}

// FormatLap renders a lap row.
// In illusion mode the live lap cycles through DynamicToken, and a lap being
// committed consumes one token from pool.
func FormatLap(d time.Duration, live, illusion bool, pool *SumOfNinePool) string {
	minutes, seconds, centis := splitDuration(d)
	var field string
	switch {
	case illusion && live:
		field = DynamicToken(d)
	case illusion && pool != nil:
		field = pool.Next()
	default:
		field = fmt.Sprintf(config.FormatCentis, centis)
	}
	return fmt.Sprintf(config.FormatDisplay, minutes, seconds, field)
}
