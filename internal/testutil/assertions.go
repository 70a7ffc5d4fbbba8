package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// containsLineWith reports whether any single log line contains all wanted
// substrings.
func containsLineWith(logOutput string, wanted ...string) bool {
	for _, line := range strings.Split(logOutput, "\n") {
		matched := true
		for _, want := range wanted {
			if !strings.Contains(line, want) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// AssertScreenReady checks the log output within a HarnessResult to confirm
// that a specific screen reached its ready hook. It abstracts the underlying
// node ID format, making tests more resilient to internal refactoring.
func AssertScreenReady(t *testing.T, result *HarnessResult, screenType, instanceName string) {
	t.Helper()

	nodeAttr := fmt.Sprintf("screen=screen.%s.%s", screenType, instanceName)
	require.True(t,
		containsLineWith(result.LogOutput, nodeAttr, "Screen ready"),
		"expected a 'Screen ready' log line for '%s.%s' was not found in logs", screenType, instanceName,
	)
}

// AssertServiceProvided confirms that a specific service instance was
// provided during the run.
func AssertServiceProvided(t *testing.T, result *HarnessResult, serviceType, instanceName string) {
	t.Helper()

	nodeAttr := fmt.Sprintf("service=service.%s.%s", serviceType, instanceName)
	require.True(t,
		containsLineWith(result.LogOutput, nodeAttr, "Service provided"),
		"expected a 'Service provided' log line for '%s.%s' was not found in logs", serviceType, instanceName,
	)
}

// AssertServiceReleased confirms that a specific service instance was
// released before the run finished.
func AssertServiceReleased(t *testing.T, result *HarnessResult, serviceType, instanceName string) {
	t.Helper()

	nodeAttr := fmt.Sprintf("service=service.%s.%s", serviceType, instanceName)
	require.True(t,
		containsLineWith(result.LogOutput, nodeAttr, "Releasing service"),
		"expected a 'Releasing service' log line for '%s.%s' was not found in logs", serviceType, instanceName,
	)
}
