package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/premkumr/ybmetrics/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONSuccess(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSONSuccess(&buf, []TabletRow{{Table: "orders", Tablet: "t1", Leader: true}})
	require.NoError(t, err)

	var env struct {
		Success bool        `json:"success"`
		Data    []TabletRow `json:"data"`
		Error   *JSONError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "orders", env.Data[0].Table)
	assert.True(t, env.Data[0].Leader)
}

func TestWriteJSONFromError(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSONFromError(&buf, errors.New(errors.ErrLock, "Another metrics process is running", "Stop it"))
	require.NoError(t, err)

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeLockHeld, env.Error.Code)
	assert.Equal(t, "Stop it", env.Error.Suggestion)
}

func TestErrorToJSON(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  string
		wantCause string
	}{
		{"config invalid", errors.New(errors.ErrConfig, "Invalid key pattern", ""), ErrCodeConfigInvalid, ""},
		{"config not found", errors.New(errors.ErrConfig, "Specified config file not found: x", ""), ErrCodeConfigNotFound, ""},
		{"store", errors.WrapWithCode(stderrors.New("timeout"), errors.ErrStore, "Unable to open db", ""), ErrCodeStore, "timeout"},
		{"fetch", errors.Wrap(stderrors.New("refused"), "fetch failed"), ErrCodeFetchFailed, "refused"},
		{"render", errors.New(errors.ErrRender, "bad", ""), ErrCodeRenderFailed, ""},
		{"wrapped structured", fmt.Errorf("outer: %w", errors.New(errors.ErrLock, "held", "")), ErrCodeLockHeld, ""},
		{"plain", stderrors.New("boom"), ErrCodeUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			je := ErrorToJSON(tt.err)
			require.NotNil(t, je)
			assert.Equal(t, tt.wantCode, je.Code)
			assert.Equal(t, tt.wantCause, je.Cause)
		})
	}

	assert.Nil(t, ErrorToJSON(nil))
}
