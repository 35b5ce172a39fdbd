package dispatch

// Status indicates the terminal state of a transformation request.
type Status uint8

const (
	// StatusSuccess indicates the transform completed and produced output.
	StatusSuccess Status = iota
	// StatusValidationFailed indicates the validator rejected the input.
	StatusValidationFailed
	// StatusCancelled indicates the request was superseded by a newer
	// submission before its outcome could be delivered.
	StatusCancelled
	// StatusFailed indicates the transform returned an error or panicked.
	StatusFailed
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusValidationFailed:
		return "validation-failed"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the single terminal result of a request.
type Outcome struct {
	// Status indicates which variant this outcome is.
	Status Status

	// Output holds the transformed text for StatusSuccess.
	Output string

	// Reason explains StatusValidationFailed and StatusFailed outcomes.
	Reason string
}

// Success builds a successful outcome.
func Success(output string) Outcome {
	return Outcome{Status: StatusSuccess, Output: output}
}

// ValidationFailed builds a validation-failure outcome. Validation failures
// are expected and recoverable; they are surfaced to the user, never logged
// as system faults.
func ValidationFailed(reason string) Outcome {
	return Outcome{Status: StatusValidationFailed, Reason: reason}
}

// Cancelled builds a cancelled outcome. Cancellation is not an error; it is
// the expected result of the dispatch ordering rule.
func Cancelled() Outcome {
	return Outcome{Status: StatusCancelled}
}

// Failed builds a failure outcome from an execution error.
func Failed(reason string) Outcome {
	return Outcome{Status: StatusFailed, Reason: reason}
}
