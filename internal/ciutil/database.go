package ciutil

import "log/slog"

// TestDatabaseURL returns the PostgreSQL URL for integration tests, preferring
// GRINDBOARD_TEST_DATABASE_URL over DATABASE_URL. It is empty when neither is set.
func TestDatabaseURL(logger *slog.Logger) string {
	return GetEnvWithFallbacks([]string{EnvTestDatabaseURL, EnvDatabaseURL}, "", logger)
}
