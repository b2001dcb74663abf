package llm

import "errors"

var (
	// ErrUnavailable indicates the generation service is unreachable.
	ErrUnavailable = errors.New("llm service unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrServiceFailure indicates the service answered but did not produce text
	// (non-2xx status, undecodable envelope, empty choices).
	ErrServiceFailure = errors.New("llm service failure")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")
)

// MalformedPayloadError is returned when generated text does not decode as
// JSON. Raw holds the offending text for diagnostics.
type MalformedPayloadError struct {
	Raw string
	Err error
}

func (e *MalformedPayloadError) Error() string {
	if e.Err == nil {
		return ErrInvalidOutput.Error()
	}
	return ErrInvalidOutput.Error() + ": " + e.Err.Error()
}

func (e *MalformedPayloadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrInvalidOutput) match every malformed payload.
func (e *MalformedPayloadError) Is(target error) bool {
	return target == ErrInvalidOutput
}

// IsServiceError reports whether err came from the transport or the service
// itself rather than from the content it returned.
func IsServiceError(err error) bool {
	return errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrServiceFailure)
}
