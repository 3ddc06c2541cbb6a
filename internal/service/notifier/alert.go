package notifier

import (
	"fmt"
	"strings"
)

// Alert classifies the external notification that triggered this invocation.
type Alert string

const (
	// AlertProblem reports a monitored failure; the device should light up.
	AlertProblem Alert = "problem"
	// AlertCustom is a manually raised notification, treated like a problem.
	AlertCustom Alert = "custom"
	// AlertRecovery reports the failure cleared; the device should go dark.
	AlertRecovery Alert = "recovery"
)

// ParseAlert maps the user-supplied alert type to an Alert,
// case-insensitively. Unknown values are a fatal configuration error.
func ParseAlert(s string) (Alert, error) {
	switch Alert(strings.ToLower(strings.TrimSpace(s))) {
	case AlertProblem:
		return AlertProblem, nil
	case AlertCustom:
		return AlertCustom, nil
	case AlertRecovery:
		return AlertRecovery, nil
	default:
		return "", fmt.Errorf("unknown alert type %q, expected problem, custom or recovery", s)
	}
}
