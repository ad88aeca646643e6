// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, not found, ambiguous).
	UserError = 1

	// AuthError indicates missing or rejected AI credentials, or bad config.
	AuthError = 2

	// BackendError indicates a storage or AI service failure.
	BackendError = 3
)
