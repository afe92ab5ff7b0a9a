// Package testutil holds helpers shared by the test suites.
package testutil

import (
	"os"
	"testing"
)

// SkipIfShort skips the test in short mode.
func SkipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}

// RequireMongo skips the test unless DOCSHAPE_TEST_MONGODB_URL points at a
// reachable MongoDB instance, and returns the URL.
func RequireMongo(t *testing.T) string {
	t.Helper()
	SkipIfShort(t)
	url := os.Getenv("DOCSHAPE_TEST_MONGODB_URL")
	if url == "" {
		t.Skip("skipping integration test (set DOCSHAPE_TEST_MONGODB_URL to run)")
	}
	return url
}
