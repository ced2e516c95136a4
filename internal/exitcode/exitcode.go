// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, blank title, unknown item).
	UserError = 1

	// ConfigError indicates an unreadable config file or an unusable store URL.
	ConfigError = 2

	// BackendError indicates a failed store call.
	BackendError = 3
)
