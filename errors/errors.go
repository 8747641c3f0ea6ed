package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// StreamError is the unified error type for the streaming core.
type StreamError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *StreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *StreamError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *StreamError) WithCause(cause error) *StreamError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *StreamError) WithDetail(key string, value any) *StreamError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new StreamError.
func New(code ErrorCode, message string) *StreamError {
	return &StreamError{Code: code, Message: message}
}

// --- Common Error Constructors ---

// Configuration creates a new StreamError for invalid construction arguments.
func Configuration(reason string) *StreamError {
	return &StreamError{
		Code:    ErrCodeConfiguration,
		Message: reason,
	}
}

// Registration creates a new StreamError for a transform that cannot be
// registered.
func Registration(process string, reason string) *StreamError {
	return &StreamError{
		Code:    ErrCodeRegistration,
		Message: fmt.Sprintf("cannot register process %q: %s", process, reason),
		Details: map[string]any{"process": process},
	}
}

// HeaderMismatch creates a new StreamError for a packet whose header field
// diverges from the buffer's. The differing field and both values are named.
func HeaderMismatch(field string, have, got any) *StreamError {
	return &StreamError{
		Code:    ErrCodeHeaderMismatch,
		Message: fmt.Sprintf("%s differs: %v != %v", field, have, got),
		Details: map[string]any{"field": field, "have": have, "got": got},
	}
}

// Overlap creates a new StreamError for a strict-mode overlap. The overlap
// size is given in samples, with the two boundary timestamps.
func Overlap(samples float64, bufEnd, pktStart time.Time) *StreamError {
	return &StreamError{
		Code: ErrCodeOverlap,
		Message: fmt.Sprintf("overlap of (%g) samples in data: (%s) (%s)",
			samples, bufEnd.UTC().Format(time.RFC3339Nano), pktStart.UTC().Format(time.RFC3339Nano)),
		Details: map[string]any{
			"overlap_samples": samples,
			"buffer_end":      bufEnd,
			"packet_start":    pktStart,
		},
	}
}

// Gap creates a new StreamError for a strict-mode gap. The gap size is given
// in samples, with the two boundary timestamps.
func Gap(samples float64, bufEnd, pktStart time.Time) *StreamError {
	return &StreamError{
		Code: ErrCodeGap,
		Message: fmt.Sprintf("gap of (%g) samples in data: (%s) (%s)",
			samples, bufEnd.UTC().Format(time.RFC3339Nano), pktStart.UTC().Format(time.RFC3339Nano)),
		Details: map[string]any{
			"gap_samples":  samples,
			"buffer_end":   bufEnd,
			"packet_start": pktStart,
		},
	}
}

// --- Inspection helpers ---

// AsStreamError extracts a *StreamError from an error chain.
func AsStreamError(err error) (*StreamError, bool) {
	var se *StreamError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// CodeOf returns the error code of err, or the empty code if err is not a
// StreamError.
func CodeOf(err error) ErrorCode {
	if se, ok := AsStreamError(err); ok {
		return se.Code
	}
	return ""
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return CodeOf(err) == ErrCodeConfiguration }

// IsRegistration reports whether err is a registration error.
func IsRegistration(err error) bool { return CodeOf(err) == ErrCodeRegistration }

// IsHeaderMismatch reports whether err is a header mismatch error.
func IsHeaderMismatch(err error) bool { return CodeOf(err) == ErrCodeHeaderMismatch }

// IsOverlap reports whether err is a strict-mode overlap error.
func IsOverlap(err error) bool { return CodeOf(err) == ErrCodeOverlap }

// IsGap reports whether err is a strict-mode gap error.
func IsGap(err error) bool { return CodeOf(err) == ErrCodeGap }
