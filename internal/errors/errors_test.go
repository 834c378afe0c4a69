package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrStore,
		ErrLock,
		ErrFetch,
		ErrRender,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid key pattern",
			suggestion: "Check the --keys regular expression",
		},
		{
			name:       "store error",
			code:       ErrStore,
			message:    "Unable to open snapshot store",
			suggestion: "Check if there is another ybmetrics process running",
		},
		{
			name:       "fetch error",
			code:       ErrFetch,
			message:    "unable to connect to 127.0.0.1:9000",
			suggestion: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
	}{
		{
			name:          "message and suggestion",
			err:           New(ErrConfig, "Invalid configuration", "Check .ybmetrics.yaml syntax"),
			expectedParts: []string{"✗", "Invalid configuration", "Check .ybmetrics.yaml syntax"},
		},
		{
			name:          "cause included",
			err:           WrapWithCode(fmt.Errorf("timeout"), ErrStore, "Store open failed", ""),
			expectedParts: []string{"Store open failed", "timeout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()
			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := Wrap(cause, "fetch failed")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrFetch, wrapped.Code, "Wrap should default to ErrFetch code")
	assert.Equal(t, cause, wrapped.Cause)
}

func TestErrorsIsAndAs(t *testing.T) {
	cause := errors.New("root cause")
	wrapped := WrapWithCode(cause, ErrLock, "Lock error", "")

	assert.True(t, errors.Is(wrapped, cause))

	var ybErr *Error
	require.True(t, errors.As(fmt.Errorf("outer: %w", wrapped), &ybErr))
	assert.Equal(t, ErrLock, ybErr.Code)
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrStore))
	assert.False(t, IsCode(errors.New("standard error"), ErrConfig))
	assert.False(t, IsCode(nil, ErrConfig))
}

func TestErrorMessageStructure(t *testing.T) {
	err := WrapWithCode(
		errors.New("timeout"),
		ErrStore,
		"Unable to open snapshot store",
		"Check if there is another ybmetrics process running",
	)

	lines := strings.Split(err.Error(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "✗"))
	assert.Contains(t, lines[0], "Unable to open snapshot store")
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOk   bool
	}{
		{"exit error", NewExitError(42), 42, true},
		{"wrapped exit error", fmt.Errorf("wrap: %w", NewExitError(3)), 3, true},
		{"standard error", errors.New("standard"), 0, false},
		{"nil", nil, 0, false},
		{"structured error", New(ErrFetch, "x", ""), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := GetExitCode(tt.err)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestExitError_Message(t *testing.T) {
	assert.Equal(t, "exit code 1", NewExitError(1).Error())
}
