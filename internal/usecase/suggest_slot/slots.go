package suggest_slot

import (
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/internal/service/conflicts"
)

// candidateStarts lists the probe times: after rounded down to the minute plus k slot steps,
// k = 1..MaxSlotProbes, cut off once the calendar date in loc moves past after's date
func candidateStarts(after time.Time, loc *time.Location) []time.Time {
	base := after.Truncate(time.Minute)

	candidates := make([]time.Time, 0, domain.MaxSlotProbes)
	for k := 1; k <= domain.MaxSlotProbes; k++ {
		candidate := base.Add(time.Duration(k) * domain.SlotStep)
		if !domain.SameDate(candidate, after, loc) {
			break
		}
		candidates = append(candidates, candidate)
	}
	return candidates
}

// firstFreeSlot returns the first candidate whose [start, start+duration) is free
func firstFreeSlot(schedule conflicts.Schedule, candidates []time.Time, duration time.Duration) (time.Time, bool) {
	for _, start := range candidates {
		if _, busy := schedule.Conflicts(start, start.Add(duration)); !busy {
			return start, true
		}
	}
	return time.Time{}, false
}
