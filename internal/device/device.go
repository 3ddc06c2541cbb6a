package device

import (
	"context"
	"errors"
)

// Switcher is the link to the physical device. Implementations deliver the
// on/off command and report the live state; everything else about the
// transport stays behind this interface.
type Switcher interface {
	// State queries the current device state (true = on).
	State(ctx context.Context) (bool, error)
	// Apply switches the device to the desired state.
	Apply(ctx context.Context, on bool) error
}

// ErrBadState is returned when the state command output cannot be
// interpreted as on or off.
var ErrBadState = errors.New("unrecognized device state output")
