package availability

import (
	"sort"
	"time"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) overlaps(start, end time.Time) bool {
	return start.Before(i.End) && i.Start.Before(end)
}

// AvailableSlots returns candidate start times within [windowStart, windowEnd)
// at which an appointment of the given duration fits without touching any busy
// interval. Candidates advance by step from windowStart; starts before now are
// dropped so clients never see slots they cannot book.
//
// All times must share a location. Busy intervals may overlap each other and
// arrive in any order.
func AvailableSlots(windowStart, windowEnd time.Time, duration, step time.Duration, busy []Interval, now time.Time) []time.Time {
	if duration <= 0 || step <= 0 {
		return nil
	}
	if windowStart.Add(duration).After(windowEnd) {
		return nil
	}

	blocked := normalize(busy)

	var slots []time.Time
	for t := windowStart; !t.Add(duration).After(windowEnd); t = t.Add(step) {
		if t.Before(now) {
			continue
		}
		if blockedAt(blocked, t, t.Add(duration)) {
			continue
		}
		slots = append(slots, t)
	}
	return slots
}

// normalize sorts busy intervals and merges overlapping or touching ones,
// dropping empty ranges. The scan in blockedAt relies on the result being
// sorted and disjoint.
func normalize(busy []Interval) []Interval {
	var valid []Interval
	for _, b := range busy {
		if b.End.After(b.Start) {
			valid = append(valid, b)
		}
	}
	if len(valid) < 2 {
		return valid
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].Start.Before(valid[j].Start) })

	merged := valid[:1]
	for _, b := range valid[1:] {
		last := &merged[len(merged)-1]
		if !b.Start.After(last.End) {
			if b.End.After(last.End) {
				last.End = b.End
			}
			continue
		}
		merged = append(merged, b)
	}
	return merged
}

func blockedAt(blocked []Interval, start, end time.Time) bool {
	// blocked is sorted by Start; binary search for the first interval that
	// could reach past start.
	i := sort.Search(len(blocked), func(i int) bool {
		return blocked[i].End.After(start)
	})
	return i < len(blocked) && blocked[i].overlaps(start, end)
}
