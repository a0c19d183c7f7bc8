package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsIdentity(t *testing.T) {
	err := Wrap(ErrAmountExceedsRemaining, "remaining %s", "1500")

	assert.True(t, errors.Is(err, ErrAmountExceedsRemaining))
	assert.False(t, errors.Is(err, ErrPayslipAlreadyPaid))
	assert.Contains(t, err.Error(), "remaining 1500")
	assert.NotContains(t, ErrAmountExceedsRemaining.Error(), "1500")
}

func TestIsThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("apply payment: %w", ErrPayslipNotFound)
	assert.True(t, errors.Is(err, ErrPayslipNotFound))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestInfra(t *testing.T) {
	assert.Nil(t, Infra(nil))

	cause := errors.New("connection refused")
	err := Infra(cause)
	assert.True(t, errors.Is(err, ErrDatabase))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))

	// already classified errors pass through untouched
	assert.Equal(t, ErrCycleClosed, Infra(ErrCycleClosed))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[error]int{
		ErrTenantNotFound:       http.StatusNotFound,
		ErrNonPositiveAmount:    http.StatusBadRequest,
		ErrNoPayslipsGenerated:  http.StatusBadRequest,
		ErrForbidden:            http.StatusForbidden,
		ErrInvalidCredentials:   http.StatusUnauthorized,
		ErrTenantNotProvisioned: http.StatusInternalServerError,
		errors.New("boom"):      http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, HTTPStatus(err), err.Error())
	}
}
