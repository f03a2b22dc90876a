package errclass

import "fmt"

// PunchError is a stable, machine-readable error class.
type PunchError struct {
	Code    string
	Message string
}

func (e *PunchError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PunchError) Is(target error) bool {
	t, ok := target.(*PunchError)
	return ok && e.Code == t.Code
}

// WithMessage returns a new PunchError with the same Code but a specific message.
func (e *PunchError) WithMessage(msg string) *PunchError {
	return &PunchError{Code: e.Code, Message: msg}
}

// WithMessagef returns a new PunchError with a formatted message.
func (e *PunchError) WithMessagef(format string, args ...any) *PunchError {
	return &PunchError{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under e's code, keeping err reachable through errors.Unwrap.
func (e *PunchError) Wrap(err error, format string, args ...any) error {
	return &wrapped{class: e.WithMessagef(format, args...), err: err}
}

type wrapped struct {
	class *PunchError
	err   error
}

func (w *wrapped) Error() string {
	return fmt.Sprintf("%s: %v", w.class.Error(), w.err)
}

func (w *wrapped) Is(target error) bool { return w.class.Is(target) }

func (w *wrapped) Unwrap() error { return w.err }

// All stable error classes.
var (
	ErrNoCommand        = &PunchError{Code: "E_NO_COMMAND"}
	ErrUnknownCommand   = &PunchError{Code: "E_UNKNOWN_COMMAND"}
	ErrAlreadyIn        = &PunchError{Code: "E_ALREADY_IN"}
	ErrAlreadyOut       = &PunchError{Code: "E_ALREADY_OUT"}
	ErrTimesheetCorrupt = &PunchError{Code: "E_TIMESHEET_CORRUPT"}
	ErrIO               = &PunchError{Code: "E_IO"}
	ErrConfigInvalid    = &PunchError{Code: "E_CONFIG_INVALID"}
	ErrUnhealthy        = &PunchError{Code: "E_UNHEALTHY"}
)
