package profile

import (
	"errors"
	"fmt"
)

// EmptyResponseError means the model returned nothing but whitespace
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string {
	return "empty response from language model"
}

// MalformedResponseError means the model output could not be turned into a profile.
// Raw holds the untouched completion so callers can log it.
type MalformedResponseError struct {
	Raw     string
	Message string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed model response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed model response: %s", e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// CompletionError wraps a failed call to the language model
type CompletionError struct {
	Model string
	Cause error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion with model %s failed: %v", e.Model, e.Cause)
}

func (e *CompletionError) Unwrap() error {
	return e.Cause
}

// IsModelError reports whether err came from the model side of extraction:
// an empty, malformed or failed completion.
func IsModelError(err error) bool {
	var empty *EmptyResponseError
	var malformed *MalformedResponseError
	var completion *CompletionError
	return errors.As(err, &empty) || errors.As(err, &malformed) || errors.As(err, &completion)
}
