package cmd

// Exit codes for browsertest CLI
const (
	// ExitSuccess indicates all tests passed
	ExitSuccess = 0

	// ExitTestFailure indicates one or more tests failed
	ExitTestFailure = 1

	// ExitTimeout indicates the page never reported a result
	ExitTimeout = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitBrowserError indicates the browser could not be started or navigated
	ExitBrowserError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
