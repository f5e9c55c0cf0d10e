package ciutil

import (
	"log/slog"
	"os"

	"github.com/phrazzld/grindboard-api/internal/redact"
)

// Environment variables checked by this package.
const (
	// EnvCI is set by most CI providers
	EnvCI = "CI"

	// EnvGitHubActions is set in GitHub Actions runners
	EnvGitHubActions = "GITHUB_ACTIONS"

	// EnvGitLabCI is set in GitLab CI jobs
	EnvGitLabCI = "GITLAB_CI"

	// EnvJenkinsURL is set in Jenkins builds
	EnvJenkinsURL = "JENKINS_URL"

	// EnvCircleCI is set in CircleCI jobs
	EnvCircleCI = "CIRCLECI"

	// EnvDatabaseURL is the general database connection string
	EnvDatabaseURL = "DATABASE_URL"

	// EnvTestDatabaseURL is the preferred connection string for PostgreSQL tests
	EnvTestDatabaseURL = "GRINDBOARD_TEST_DATABASE_URL"
)

// IsCI reports whether the process runs under a known CI provider.
func IsCI() bool {
	return os.Getenv(EnvCI) != "" ||
		os.Getenv(EnvGitHubActions) != "" ||
		os.Getenv(EnvGitLabCI) != "" ||
		os.Getenv(EnvJenkinsURL) != "" ||
		os.Getenv(EnvCircleCI) != ""
}

// GetEnvWithFallbacks returns the value of the first non-empty environment
// variable in envVars, or defaultValue when none is set. Using any variable
// but the first logs a warning naming the preferred one.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		val := os.Getenv(envVar)
		if val == "" {
			continue
		}
		if i > 0 && logger != nil {
			logger.Warn("using fallback environment variable",
				slog.String("used_var", envVar),
				slog.String("preferred_var", envVars[0]),
				slog.String("value", redact.String(val)))
		}
		return val
	}
	return defaultValue
}
