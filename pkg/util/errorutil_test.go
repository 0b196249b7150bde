package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_PassesThroughWrapped(t *testing.T) {
	orig := NewConflict("email already registered", nil)
	wrapped := fmt.Errorf("register: %w", orig)

	de := ToDomainError(wrapped)
	require.NotNil(t, de)
	assert.Equal(t, CodeConflict, de.Code)
	assert.Equal(t, http.StatusConflict, de.HTTPStatus)
}

func TestToDomainError_MapsFiberErrors(t *testing.T) {
	cases := []struct {
		in     *fiber.Error
		code   string
		status int
	}{
		{fiber.NewError(http.StatusBadRequest, "bad"), CodeValidationFailed, http.StatusBadRequest},
		{fiber.ErrNotFound, CodeNotFound, http.StatusNotFound},
		{fiber.ErrUnauthorized, CodeUnauthenticated, http.StatusUnauthorized},
		{fiber.ErrForbidden, CodeForbidden, http.StatusForbidden},
		{fiber.ErrTooManyRequests, CodeTooManyRequests, http.StatusTooManyRequests},
		{fiber.ErrServiceUnavailable, CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		de := ToDomainError(tc.in)
		assert.Equal(t, tc.code, de.Code, "code for %d", tc.in.Code)
		assert.Equal(t, tc.status, de.HTTPStatus, "status for %d", tc.in.Code)
	}
}

func TestToDomainError_NoRowsIsNotFound(t *testing.T) {
	de := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, CodeNotFound, de.Code)
}

func TestToDomainError_UnknownIsInternal(t *testing.T) {
	cause := errors.New("connection reset by peer")
	de := ToDomainError(cause)

	assert.Equal(t, CodeInternal, de.Code)
	assert.Equal(t, "internal server error", de.Message)
	assert.ErrorIs(t, de, cause)
}

func TestMapError_Nil(t *testing.T) {
	assert.NoError(t, MapError(nil))
	assert.Nil(t, ToDomainError(nil))
}
