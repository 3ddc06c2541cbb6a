package lamp

import "iter"

// Log is the ordered history of device state changes.
// Entries are append-only; insertion order is chronological order.
type Log struct {
	// Entries holds the state changes, oldest first.
	Entries []Entry `json:"entries"`
}

// Append adds an entry to the in-memory log. It does not persist anything.
func (l *Log) Append(e Entry) {
	l.Entries = append(l.Entries, e)
}

// Last returns the most recent entry, or false if the log is empty.
func (l *Log) Last() (Entry, bool) {
	if len(l.Entries) == 0 {
		return Entry{}, false
	}

	return l.Entries[len(l.Entries)-1], true
}

// Len returns the number of entries in the log.
func (l *Log) Len() int {
	return len(l.Entries)
}

// All returns a restartable iterator over the entries in insertion order.
func (l *Log) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range l.Entries {
			if !yield(e) {
				return
			}
		}
	}
}
