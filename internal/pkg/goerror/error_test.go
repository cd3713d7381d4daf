package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, "boom", NewServer(cause).Error())
	assert.Equal(t, "bad key: boom", NewInvalidInput("bad key", cause).Error())
	assert.Equal(t, "missing", NewBusiness("missing", CodeNotFound).Error())
	assert.Equal(t, "Validation violation", (&Error{errType: TypeValidation}).Error())
}

func TestFromHTTPStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantNil   bool
		wantCode  Code
		retryable bool
	}{
		{name: "ok", status: http.StatusOK, wantNil: true},
		{name: "not found", status: http.StatusNotFound, wantCode: CodeNotFound},
		{name: "timeout", status: http.StatusGatewayTimeout, wantCode: CodeTimeout, retryable: true},
		{name: "too many", status: http.StatusTooManyRequests, wantCode: CodeUnavailable, retryable: true},
		{name: "server", status: http.StatusBadGateway, wantCode: CodeUnavailable, retryable: true},
		{name: "forbidden", status: http.StatusForbidden, wantCode: CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromHTTPStatus(tt.status, "image")
			if tt.wantNil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, CodeOf(err))
			assert.Equal(t, tt.retryable, IsRetryable(err))
		})
	}
}

func TestNotFoundUnwraps(t *testing.T) {
	err := NewNotFound("method Close")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}
