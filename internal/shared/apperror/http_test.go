package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-hrportal/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps its code and status", func(t *testing.T) {
		err := apperror.New(apperror.CodeInvalidState, "Insufficient leave balance", http.StatusUnprocessableEntity)

		httpErr := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
		assert.Equal(t, apperror.CodeInvalidState, httpErr.Code)
		assert.Equal(t, "Insufficient leave balance", httpErr.Message)
		assert.Nil(t, httpErr.Details)
	})

	t.Run("wrapped app error is unwrapped", func(t *testing.T) {
		sentinel := apperror.New(apperror.CodeNotFound, "Leave request not found", http.StatusNotFound)
		err := fmt.Errorf("load request: %w", sentinel)

		httpErr := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, apperror.CodeNotFound, httpErr.Code)
	})

	t.Run("unknown error becomes a generic 500", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("pq: connection reset"))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.NotContains(t, httpErr.Message, "pq:")
	})
}
