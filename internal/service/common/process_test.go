//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestIsRunning_IgnoresSelf checks that the test binary does not count as another instance.
func TestIsRunning_IgnoresSelf(t *testing.T) {
	t.Parallel()

	running, err := IsRunning("alarm-clock-process-that-does-not-exist")
	require.NoError(t, err)
	require.False(t, running)

	// ExecutableName is the test binary; only this process runs it.
	running, err = IsRunning(ExecutableName())
	require.NoError(t, err)
	require.False(t, running)
}

// TestNormalizeProcessName compares names the way the guard does.
func TestNormalizeProcessName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "alarm-clock", normalizeProcessName("Alarm-Clock.exe"))
	require.Equal(t, "alarm-clock", normalizeProcessName("/usr/local/bin/alarm-clock"))
}
