package nli

import (
	"errors"
	"fmt"
)

var (
	// Sentinel errors for errors.Is checks by callers.
	ErrConfiguration      = errors.New("nli: invalid configuration")
	ErrUnsupportedFeature = errors.New("nli: unsupported feature")
	ErrTransport          = errors.New("nli: transport failure")
	ErrStatus             = errors.New("nli: service reported failure status")
	ErrMalformedResponse  = errors.New("nli: malformed response")
)

// ConfigurationError reports an invalid construction-time parameter.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("nli: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// UnsupportedFeatureError reports a requested extension that is not implemented.
type UnsupportedFeatureError struct {
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("nli: %s is not supported yet", e.Feature)
}

func (e *UnsupportedFeatureError) Is(target error) bool { return target == ErrUnsupportedFeature }

// TransportError reports an HTTP-level failure. StatusCode is zero when no
// response was received.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	msg := "nli: transport failure"
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports that the service answered with a status other than "ok".
type StatusError struct {
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("nli: service responded status %q", e.Status)
}

func (e *StatusError) Is(target error) bool { return target == ErrStatus }

// MalformedResponseError reports an "ok" response whose payload does not have
// the expected shape.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return "nli: malformed response: " + e.Reason
}

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }
