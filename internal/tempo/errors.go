package tempo

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// ValidationError represents fatal input-validation errors. Any malformed
// input aborts the run before a report is produced; missing data is not an
// error and flows through as absent readings instead.
type ValidationError struct {
	FileID  string `json:"file_id,omitempty"`
	Method  string `json:"method,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeDuplicate     = "DUPLICATE_ESTIMATE"
	ErrCodeInvalidBPM    = "INVALID_BPM"
	ErrCodeStoreFrozen   = "STORE_FROZEN"
	ErrCodeNotFrozen     = "STORE_NOT_FROZEN"
	ErrCodeEmptyCorpus   = "EMPTY_CORPUS"
	ErrCodeUnknownMethod = "UNKNOWN_METHOD"
	ErrCodeUnknownFile   = "UNKNOWN_FILE"
)

// NewValidationError creates a new validation error
func NewValidationError(fileID, method, code, message string, cause error) *ValidationError {
	return &ValidationError{
		FileID:  fileID,
		Method:  method,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
