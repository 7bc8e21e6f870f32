package orchestrator

import (
	"time"

	"github.com/trendcast/trendcast-api/internal/stage"
)

// NextOptimalTime picks the next posting time from the platform's ordered
// slot list: the first slot strictly after now projected onto today, or
// the first slot tomorrow when today's slots are all past. An empty slot
// list means publish immediately.
func NextOptimalTime(slots []stage.TimeSlot, now time.Time) time.Time {
	if len(slots) == 0 {
		return now
	}

	year, month, day := now.Date()
	for _, slot := range slots {
		candidate := time.Date(year, month, day, slot.Hour, slot.Minute, 0, 0, now.Location())
		if candidate.After(now) {
			return candidate
		}
	}

	first := slots[0]
	return time.Date(year, month, day, first.Hour, first.Minute, 0, 0, now.Location()).AddDate(0, 0, 1)
}
