package cli

import (
	"errors"

	"github.com/wesleyorama2/bitly/bitly"
)

// Process exit codes.
const (
	ExitOK             = 0
	ExitError          = 1
	ExitAPIError       = 2
	ExitTransportError = 3
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var apiErr *bitly.APIError
	if errors.As(err, &apiErr) {
		return ExitAPIError
	}
	var transportErr *bitly.TransportError
	if errors.As(err, &transportErr) {
		return ExitTransportError
	}
	return ExitError
}

// reportedError marks an error the formatter has already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string {
	return e.err.Error()
}

func (e *reportedError) Unwrap() error {
	return e.err
}
