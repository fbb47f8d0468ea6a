package errs

import "fmt"

// Kind categorizes application errors for diagnostics and HTTP status mapping.
type Kind int

const (
	// Unknown represents an unclassified error.
	Unknown Kind = iota
	// InvalidInput indicates the supplied URL was malformed (HTTP 400).
	InvalidInput
	// Timeout indicates the target exceeded the scan's wall-clock timeout (HTTP 504).
	Timeout
	// TLSError indicates the TLS handshake or certificate validation failed (HTTP 502).
	TLSError
	// ConnectionRefused indicates the target actively refused the connection (HTTP 502).
	ConnectionRefused
	// NonSuccessStatus indicates the target answered with a non-2xx status (HTTP 502).
	NonSuccessStatus
	// NetworkError indicates any other transport-level failure (HTTP 502).
	NetworkError
)

// String returns the kind's wire-friendly name.
func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case Timeout:
		return "timeout"
	case TLSError:
		return "tls_error"
	case ConnectionRefused:
		return "connection_refused"
	case NonSuccessStatus:
		return "non_success_status"
	case NetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// AppError carries a category, a user-facing message, and the original cause.
type AppError struct {
	Kind           Kind
	UpstreamStatus int // status code returned by the target, set for NonSuccessStatus
	Message        string
	Cause          error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}
