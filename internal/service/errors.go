package service

import "errors"

var (
	ErrModelUnavailable = errors.New("model is not available")
	ErrInference        = errors.New("inference failed")
)

// UnavailableError is returned for every query when the model failed to load.
// Its message is the error captured at startup.
type UnavailableError struct {
	Reason string
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return ErrModelUnavailable.Error()
	}
	return e.Reason
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrModelUnavailable
}

// InferenceError wraps a failure raised by the model runtime during a request.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return e.Err.Error()
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

func (e *InferenceError) Is(target error) bool {
	return target == ErrInference
}
