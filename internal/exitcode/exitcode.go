package exitcode

import (
	"os"

	"github.com/felixgeelhaar/taskgen/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ConfigError indicates malformed workload or expansion input
	ConfigError = 3

	// VCSError indicates the version-control subprocess failed
	VCSError = 4

	// WriteError indicates the task configuration could not be written
	WriteError = 5

	// Interrupted indicates the run was cancelled by a signal
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps an error onto an exit code using its error code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	switch errors.CodeOf(err) {
	case errors.ErrCodeFileNotFound,
		errors.ErrCodeFileReadFailed,
		errors.ErrCodeFileUnmarshal,
		errors.ErrCodeWorkloadSetupShape,
		errors.ErrCodeExpansionUnknownKey,
		errors.ErrCodeExpansionBadValue:
		return ConfigError
	case errors.ErrCodeVCSCommandFailed:
		return VCSError
	case errors.ErrCodeFileWriteFailed,
		errors.ErrCodeDirectoryFailed,
		errors.ErrCodeFileMarshal:
		return WriteError
	case errors.ErrCodeOpUnknownMode:
		return UsageError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case ConfigError:
		return "Configuration error (bad workload or expansions file)"
	case VCSError:
		return "Version control error"
	case WriteError:
		return "Output write error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
