package lamp

import "time"

// Mode identifies what produced a history entry.
type Mode string

const (
	// ModeUnset marks entries written before mode tracking existed.
	ModeUnset Mode = ""
	// ModeWatch marks entries produced by the watchdog.
	ModeWatch Mode = "watch"
	// ModeNotif marks entries produced by an external alert.
	ModeNotif Mode = "notif"
	// ModeManual marks synthesized entries for state changes made outside the system.
	ModeManual Mode = "manual"
)

// Valid reports whether the mode is one of the known values.
func (m Mode) Valid() bool {
	switch m {
	case ModeUnset, ModeWatch, ModeNotif, ModeManual:
		return true
	default:
		return false
	}
}

// Entry records the device state as of Timestamp.
// The state holds until the next entry.
type Entry struct {
	// Timestamp is the moment of the state change in unix seconds.
	Timestamp int64 `json:"timestamp"`
	// IsOn is the device state as of Timestamp.
	IsOn bool `json:"is_on"`
	// Mode tags what produced the entry.
	Mode Mode `json:"mode"`
	// Label is an optional annotation carrying an external alert identifier.
	Label string `json:"label,omitempty"`
}

// Time returns the entry timestamp as a time.Time in the local zone.
func (e Entry) Time() time.Time {
	return time.Unix(e.Timestamp, 0)
}
