package lamp

import "time"

// OnDuration sums the cumulative on-time within the trailing interval
// [now - span, now] by scanning the history newest to oldest.
//
// The history is a sparse edge-list of transitions: a state holds from its
// entry until the next-newer entry, so each on-entry contributes the span
// between its timestamp and the cursor consumed by the next-newer boundary.
func (l *Log) OnDuration(now time.Time, span time.Duration) time.Duration {
	var (
		total    int64
		cursor   = now.Unix()
		lowBound = now.Add(-span).Unix()
	)

	for i := len(l.Entries) - 1; i >= 0 && cursor > lowBound; i-- {
		e := l.Entries[i]
		if e.IsOn {
			total += cursor - e.Timestamp
		}

		cursor = e.Timestamp
	}

	return time.Duration(total) * time.Second
}

// OnTooLong reports whether the cumulative on-time within the trailing
// [now - maxOn - rest, now] interval has reached maxOn, and returns the
// accumulated duration for diagnostics.
//
// The scan interval is widened by rest so an on-period starting just before
// the maxOn boundary is still fully counted and an off-then-on cycle inside
// the rest period stays visible.
func (l *Log) OnTooLong(now time.Time, maxOn, rest time.Duration) (time.Duration, bool) {
	onFor := l.OnDuration(now, maxOn+rest)

	return onFor, onFor >= maxOn
}

// EstimateManualTime picks a plausible timestamp for a state change made
// outside the system. The estimate is now - offset when that still postdates
// the previous entry, otherwise the midpoint between the previous entry and
// now. Either way it never claims a moment in the future or before the
// previous entry.
func EstimateManualTime(now time.Time, last int64, hasLast bool, offset time.Duration) int64 {
	candidate := now.Unix() - int64(offset/time.Second)
	if !hasLast || candidate > last {
		return candidate
	}

	return now.Unix() - (now.Unix()-last)/2
}
