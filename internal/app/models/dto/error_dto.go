package dto

// ErrorCode identifies the failure class in an error envelope.
type ErrorCode string

const (
	ErrorCodeAuthRequired          ErrorCode = "AUTH_REQUIRED"
	ErrorCodeValidationFailed      ErrorCode = "VAL_001"
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"
	ErrorCodeInternalServer        ErrorCode = "SRV_001"
	// Store rejected or could not run the operation; the message is the store's.
	ErrorCodeDatabaseError ErrorCode = "SRV_002"
)

// ErrorSeverity tells clients whether to surface the error as a toast or a banner.
type ErrorSeverity string

const (
	ErrorSeverityInfo    ErrorSeverity = "INFO"
	ErrorSeverityWarning ErrorSeverity = "WARNING"
	ErrorSeverityError   ErrorSeverity = "ERROR"
)

// ErrorDetail is the "error" member of a failed envelope.
type ErrorDetail struct {
	Code     ErrorCode     `json:"code"`
	Message  string        `json:"message"`
	Field    string        `json:"field,omitempty"`
	Severity ErrorSeverity `json:"severity"`
	Details  interface{}   `json:"details,omitempty"`
}

// NewErrorDetail builds an ERROR-severity detail.
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{Code: code, Message: message, Severity: ErrorSeverityError}
}

// WithField names the rejected input field.
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

func (e *ErrorDetail) WithSeverity(severity ErrorSeverity) *ErrorDetail {
	e.Severity = severity
	return e
}

// WithDetails attaches extra context such as the sign-in redirect.
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}
