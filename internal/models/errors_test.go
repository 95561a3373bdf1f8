package models

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorStatusCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind ErrorKind
		want int
	}{
		{ErrorKindUnauthorized, http.StatusUnauthorized},
		{ErrorKindForbidden, http.StatusForbidden},
		{ErrorKindBadRequest, http.StatusBadRequest},
		{ErrorKindNotFound, http.StatusNotFound},
		{ErrorKindConflict, http.StatusConflict},
		{ErrorKindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		err := &AppError{Kind: tt.kind, Message: "x"}
		assert.Equal(t, tt.want, err.StatusCode())
	}
}

func TestBodyShape(t *testing.T) {
	t.Parallel()

	body := NewForbiddenError("").Body()
	assert.Len(t, body.Errors, 1)
	assert.Equal(t, ForbiddenMessage, body.Errors[0].Message)
	assert.Equal(t, "1", body.Errors[0].Code)
}

func TestSanitizeErrorStripsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("pq: connection refused to 10.0.0.5")
	sanitized := SanitizeError(NewUnauthorizedError(cause))

	assert.Equal(t, ErrorKindUnauthorized, sanitized.Kind)
	assert.Equal(t, UnauthorizedMessage, sanitized.Message)
	assert.Nil(t, sanitized.Cause)
	assert.NotContains(t, sanitized.Error(), "10.0.0.5")
}

func TestSanitizeErrorUnknownBecomesInternal(t *testing.T) {
	t.Parallel()

	sanitized := SanitizeError(errors.New("driver: bad connection"))
	assert.Equal(t, ErrorKindInternal, sanitized.Kind)
	assert.NotContains(t, sanitized.Message, "driver")
}

func TestAppErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := NewNotFoundError(cause)
	assert.True(t, errors.Is(err, cause))
}
