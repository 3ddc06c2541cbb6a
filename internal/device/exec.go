package device

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/oshokin/lamp-warden/internal/config"
	"github.com/oshokin/lamp-warden/internal/logger"
)

// errEmptyCommand is returned when a configured command line has no words.
var errEmptyCommand = errors.New("device command must not be empty")

// ExecSwitcher drives the device through external command lines from the
// configuration, appending the device name as the final argument. The state
// command must print the current state on stdout (1/on/true or 0/off/false,
// case-insensitive).
type ExecSwitcher struct {
	// name is the device identifier passed to every command.
	name string
	// stateArgv, onArgv and offArgv are the pre-split command lines.
	stateArgv []string
	onArgv    []string
	offArgv   []string
}

// NewExecSwitcher builds a switcher from the device configuration.
func NewExecSwitcher(cfg config.DeviceConfig) (*ExecSwitcher, error) {
	s := &ExecSwitcher{
		name:      cfg.Name,
		stateArgv: strings.Fields(cfg.StateCommand),
		onArgv:    strings.Fields(cfg.OnCommand),
		offArgv:   strings.Fields(cfg.OffCommand),
	}

	if len(s.stateArgv) == 0 || len(s.onArgv) == 0 || len(s.offArgv) == 0 {
		return nil, errEmptyCommand
	}

	return s, nil
}

// State runs the state command and parses its output.
func (s *ExecSwitcher) State(ctx context.Context) (bool, error) {
	out, err := s.run(ctx, s.stateArgv)
	if err != nil {
		return false, err
	}

	on, err := parseState(string(out))
	if err != nil {
		return false, fmt.Errorf("device %s: %w", s.name, err)
	}

	return on, nil
}

// Apply runs the on or off command for the desired state.
func (s *ExecSwitcher) Apply(ctx context.Context, on bool) error {
	argv := s.offArgv
	if on {
		argv = s.onArgv
	}

	logger.DebugKV(ctx, "Applying device state", "device", s.name, "on", on)

	_, err := s.run(ctx, argv)

	return err
}

// run executes one command line with the device name appended.
func (s *ExecSwitcher) run(ctx context.Context, argv []string) ([]byte, error) {
	args := make([]string, 0, len(argv))
	args = append(args, argv[1:]...)
	args = append(args, s.name)

	out, err := exec.CommandContext(ctx, argv[0], args...).Output()
	if err != nil {
		return nil, fmt.Errorf("device command %q: %w", argv[0], err)
	}

	return out, nil
}

// parseState maps the state command output to a boolean device state.
func parseState(out string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(out)) {
	case "1", "on", "true":
		return true, nil
	case "0", "off", "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrBadState, strings.TrimSpace(out))
	}
}
