package cmd

// Exit codes for hookspec CLI
const (
	// ExitSuccess indicates all tests passed
	ExitSuccess = 0

	// ExitTestFailure indicates one or more tests or group hooks failed
	ExitTestFailure = 1

	// ExitParseError indicates an invalid plan file
	ExitParseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitSessionError indicates a browser session could not be created
	ExitSessionError = 4

	// ExitStopped indicates a hook failure stopped execution
	ExitStopped = 5

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
