package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Window is one allowed time-of-day interval, in minutes since midnight,
// inclusive of both endpoints. A window never spans midnight: one with
// Start > End simply admits nothing.
type Window struct {
	// Start is the first admitted minute of the day.
	Start int
	// End is the last admitted minute of the day.
	End int
}

// Table maps weekdays to their allowed windows.
// It is built once from configuration and read-only afterwards.
type Table map[time.Weekday][]Window

// weekdayNames maps lowercase config keys to time.Weekday values.
//
//nolint:gochecknoglobals // Static lookup table.
var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Parse builds a Table from the raw configuration mapping of weekday names
// to "H:MM-H:MM" window strings.
func Parse(raw map[string][]string) (Table, error) {
	table := make(Table, len(raw))

	for name, windows := range raw {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q in schedule", name)
		}

		parsed := make([]Window, 0, len(windows))

		for _, s := range windows {
			w, err := parseWindow(s)
			if err != nil {
				return nil, fmt.Errorf("weekday %q: %w", name, err)
			}

			parsed = append(parsed, w)
		}

		table[day] = parsed
	}

	return table, nil
}

// Allows reports whether the minute-of-day of now falls within any window
// configured for its weekday. A weekday without windows admits nothing.
func (t Table) Allows(now time.Time) bool {
	minute := now.Hour()*60 + now.Minute()

	for _, w := range t[now.Weekday()] {
		if minute >= w.Start && minute <= w.End {
			return true
		}
	}

	return false
}

// parseWindow parses a single "H:MM-H:MM" interval.
func parseWindow(s string) (Window, error) {
	from, to, ok := strings.Cut(s, "-")
	if !ok {
		return Window{}, fmt.Errorf("malformed window %q, expected \"H:MM-H:MM\"", s)
	}

	start, err := parseClock(from)
	if err != nil {
		return Window{}, fmt.Errorf("malformed window %q: %w", s, err)
	}

	end, err := parseClock(to)
	if err != nil {
		return Window{}, fmt.Errorf("malformed window %q: %w", s, err)
	}

	return Window{Start: start, End: end}, nil
}

// parseClock converts "H:MM" to a minute of the day.
func parseClock(s string) (int, error) {
	hs, ms, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}

	hour, err := strconv.Atoi(hs)
	if err != nil {
		return 0, fmt.Errorf("malformed hour %q", hs)
	}

	minute, err := strconv.Atoi(ms)
	if err != nil {
		return 0, fmt.Errorf("malformed minute %q", ms)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}

	return hour*60 + minute, nil
}
