// Package testutil provides testing utilities.
package testutil

import (
	"os"
	"testing"
)

// SkipLiveAPITests skips the test if BRIXIE_LIVE_TESTS is not set.
// Use this for tests that hit the real Rebrickable API.
//
// Run live tests with: BRIXIE_LIVE_TESTS=1 go test ./...
func SkipLiveAPITests(t *testing.T) {
	t.Helper()
	if os.Getenv("BRIXIE_LIVE_TESTS") == "" {
		t.Skip("Skipping live API test (set BRIXIE_LIVE_TESTS=1 to run)")
	}
}
