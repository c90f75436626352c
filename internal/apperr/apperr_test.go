package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStatus_KnownCodes(t *testing.T) {
	tests := []struct {
		status      int
		wantCode    string
		isRetryable bool
	}{
		{http.StatusBadGateway, CodeUpstreamUnavailable, true},
		{http.StatusServiceUnavailable, CodeServiceUnavailable, true},
		{http.StatusTooManyRequests, CodeRateLimitExceeded, true},
		{http.StatusUnauthorized, CodeAuthRequired, false},
		{http.StatusForbidden, CodeAccessDenied, false},
		{http.StatusInternalServerError, CodeInternalError, true},
		{http.StatusGatewayTimeout, CodeGatewayTimeout, true},
		{http.StatusBadRequest, CodeBadRequest, false},
		{http.StatusNotFound, CodeNotFound, false},
	}

	for _, tt := range tests {
		err := FromStatus(tt.status, "")

		assert.Equal(t, tt.wantCode, err.Code)
		assert.Equal(t, tt.isRetryable, err.IsRetryable)
		assert.Equal(t, tt.status, err.Status)
	}
}

func TestFromStatus_UnknownStatus(t *testing.T) {
	err := FromStatus(http.StatusTeapot, "")

	assert.Equal(t, CodeUnknownError, err.Code)
	assert.False(t, err.IsRetryable)
}

func TestFromStatus_RetryAfterHeaderOverridesDefault(t *testing.T) {
	err := FromStatus(http.StatusTooManyRequests, "120")
	assert.Equal(t, 120, err.RetryAfter)

	err = FromStatus(http.StatusTooManyRequests, "not-a-number")
	assert.Equal(t, 60, err.RetryAfter)
}

func TestNetwork(t *testing.T) {
	err := Network()

	assert.Equal(t, CodeNetworkError, err.Code)
	assert.True(t, err.IsRetryable)
}

func TestFrom(t *testing.T) {
	assert.Nil(t, From(nil))

	original := AuthRequired()
	assert.Same(t, original, From(original))

	wrapped := From(errors.New("boom"))
	assert.Equal(t, CodeInternalError, wrapped.Code)
}

func TestError_Error(t *testing.T) {
	err := Validation("topic name is required")

	assert.Equal(t, "VALIDATION_FAILED: topic name is required", err.Error())
}
