//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

// IsRunning reports whether another process with the given executable name
// is running. The current process is ignored. Names are compared without the
// ".exe" suffix and case-insensitively.
func IsRunning(name string) (bool, error) {
	processes, err := ps.Processes()
	if err != nil {
		return false, fmt.Errorf("list processes: %w", err)
	}

	self := os.Getpid()
	want := normalizeProcessName(name)

	for _, process := range processes {
		if process.Pid() == self {
			continue
		}

		if normalizeProcessName(process.Executable()) == want {
			return true, nil
		}
	}

	return false, nil
}

// ExecutableName returns the base name of the running binary.
func ExecutableName() string {
	path, err := os.Executable()
	if err != nil {
		path = os.Args[0]
	}

	return filepath.Base(path)
}

// normalizeProcessName strips the directory and ".exe" suffix and lowercases the name.
func normalizeProcessName(name string) string {
	name = strings.ToLower(filepath.Base(name))

	return strings.TrimSuffix(name, ".exe")
}
