package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Construction/registration errors
const (
	// ErrCodeConfiguration indicates invalid accumulator construction
	// arguments, e.g. a non-positive retention bound.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeRegistration indicates an unknown or ambiguous transform name,
	// or malformed transform options.
	ErrCodeRegistration ErrorCode = "REGISTRATION_ERROR"
)

// Append-time errors
const (
	// ErrCodeHeaderMismatch indicates identity, sampling rate, calibration
	// or dtype divergence between the buffer and an incoming packet.
	ErrCodeHeaderMismatch ErrorCode = "HEADER_MISMATCH"
	// ErrCodeOverlap indicates a strict-mode overlap between the end of the
	// retained series and the start of a packet.
	ErrCodeOverlap ErrorCode = "OVERLAP"
	// ErrCodeGap indicates a strict-mode gap between the end of the retained
	// series and the start of a packet.
	ErrCodeGap ErrorCode = "GAP"
)

// Collaborator errors
const (
	// ErrCodeTransform indicates a violated transform call contract.
	// Failures inside a transform body are surfaced unchanged, without
	// this code; see the realtime package.
	ErrCodeTransform ErrorCode = "TRANSFORM_ERROR"
)
