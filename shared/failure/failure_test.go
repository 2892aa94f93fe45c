package failure_test

import (
	"clinic/shared/failure"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailure_Constructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "bad request from error",
			err:     failure.BadRequest(errors.New("phone is required")),
			code:    http.StatusBadRequest,
			message: "phone is required",
		},
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("invalid mode"),
			code:    http.StatusBadRequest,
			message: "invalid mode",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("token revoked"),
			code:    http.StatusUnauthorized,
			message: "token revoked",
		},
		{
			name:    "not found",
			err:     failure.NotFound("reservation not found"),
			code:    http.StatusNotFound,
			message: "reservation not found",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("please retry"),
			code:    http.StatusConflict,
			message: "please retry",
		},
		{
			name:    "unprocessable",
			err:     failure.Unprocessable("this time slot is fully booked"),
			code:    http.StatusUnprocessableEntity,
			message: "this time slot is fully booked",
		},
		{
			name:    "forbidden",
			err:     failure.Forbidden("admin disabled"),
			code:    http.StatusForbidden,
			message: "admin disabled",
		},
		{
			name:    "explicit code",
			err:     failure.New(http.StatusServiceUnavailable, "export storage unavailable"),
			code:    http.StatusServiceUnavailable,
			message: "export storage unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fail *failure.Failure

			require.ErrorAs(t, tt.err, &fail)
			assert.Equal(t, tt.code, fail.Code)
			assert.Equal(t, tt.message, fail.Error())
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
		})
	}
}

func TestFailure_NilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "plain error maps to internal",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
		{
			name: "wrapped failure keeps its code",
			err:  fmt.Errorf("failed to book: %w", failure.Unprocessable("duplicate")),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "predefined forbidden",
			err:  failure.ForbiddenError,
			want: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.GetCode(tt.err))
		})
	}
}

func TestIsServerError(t *testing.T) {
	assert.True(t, failure.IsServerError(errors.New("db down")))
	assert.False(t, failure.IsServerError(failure.NotFound("missing")))
	assert.False(t, failure.IsServerError(failure.Conflict("retry")))
}
