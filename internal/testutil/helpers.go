package testutil

import (
	"testing"
	"time"
)

// WaitFor polls cond until it holds or the deadline passes. Used for
// asserting on work that completes on background goroutines.
func WaitFor(t *testing.T, msg string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %s", msg)
}
