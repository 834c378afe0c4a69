package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"

	"github.com/premkumr/ybmetrics/internal/errors"
)

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --format json output uses this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Cause      string `json:"cause,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
	ErrCodeStore          = "STORE_UNAVAILABLE"
	ErrCodeLockHeld       = "LOCK_HELD"
	ErrCodeFetchFailed    = "FETCH_FAILED"
	ErrCodeRenderFailed   = "RENDER_FAILED"
	ErrCodeUnknown        = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: true,
		Data:    data,
	})
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: false,
		Error:   ErrorToJSON(err),
	})
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var ybErr *errors.Error
	if stderrors.As(err, &ybErr) {
		je := &JSONError{
			Code:       mapErrorCode(ybErr.Code, ybErr.Message),
			Message:    ybErr.Message,
			Suggestion: ybErr.Suggestion,
		}
		if ybErr.Cause != nil {
			je.Cause = ybErr.Cause.Error()
		}
		return je
	}

	return &JSONError{
		Code:    ErrCodeUnknown,
		Message: err.Error(),
	}
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(internalCode, message string) string {
	switch internalCode {
	case errors.ErrConfig:
		if strings.Contains(strings.ToLower(message), "not found") {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrStore:
		return ErrCodeStore
	case errors.ErrLock:
		return ErrCodeLockHeld
	case errors.ErrFetch:
		return ErrCodeFetchFailed
	case errors.ErrRender:
		return ErrCodeRenderFailed
	}
	return ErrCodeUnknown
}
