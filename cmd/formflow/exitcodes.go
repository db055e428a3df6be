package main

const (
	ExitSuccess = 0 // Success
	ExitError   = 1 // Invalid arguments or runtime failure
	ExitConfig  = 2 // Configuration could not be loaded
	ExitInvalid = 3 // Submission rejected by validation
	ExitFailed  = 4 // Submission action failed
)

// exitError carries a process exit code through cobra's RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return "exit status"
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func exitWith(code int, err error) error {
	return &exitError{code: code, err: err}
}
