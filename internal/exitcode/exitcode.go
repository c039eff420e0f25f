package exitcode

import (
	"os"

	"github.com/gatherly/gatherly/internal/apierr"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication or authorization failure
	AuthError = 3

	// NotFound indicates the requested resource does not exist
	NotFound = 4

	// NetworkError indicates the API could not be reached at all
	NetworkError = 5

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps an error to an exit code using the typed API error
// when present
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	if apiErr := apierr.FromError(err); apiErr != nil {
		switch {
		case apierr.IsNetwork(apiErr):
			return NetworkError
		case apierr.IsAuth(apiErr):
			return AuthError
		case apierr.IsNotFound(apiErr):
			return NotFound
		}
	}

	return GeneralError
}
