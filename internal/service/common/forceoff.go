package common

import "os"

// ForceOffActive reports whether the external force-off signal is raised,
// which is simply the presence of the configured marker file. An empty path
// means the signal is not configured.
func ForceOffActive(path string) bool {
	if path == "" {
		return false
	}

	_, err := os.Stat(path)

	return err == nil
}
