package device

import "context"

// Fake is a test double implementing Switcher with scripted behavior.
type Fake struct {
	// On is the current scripted device state.
	On bool

	// StateErr, if set, is returned by State.
	StateErr error

	// ApplyErr, if set, is returned by Apply.
	ApplyErr error

	// Applied records every state passed to Apply.
	Applied []bool
}

// State returns the scripted state or the scripted error.
func (f *Fake) State(_ context.Context) (bool, error) {
	if f.StateErr != nil {
		return false, f.StateErr
	}

	return f.On, nil
}

// Apply records the desired state and mirrors it into On.
func (f *Fake) Apply(_ context.Context, on bool) error {
	if f.ApplyErr != nil {
		return f.ApplyErr
	}

	f.Applied = append(f.Applied, on)
	f.On = on

	return nil
}
