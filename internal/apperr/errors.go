// Package apperr is the error taxonomy shared by the payroll core and its HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInvariant
	KindState
	KindForbidden
	KindUnauthorized
	KindInfrastructure
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvariant:
		return "invariant_violation"
	case KindState:
		return "state_violation"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	case KindInfrastructure:
		return "infrastructure"
	}
	return "unknown"
}

// Error carries a stable Code for clients plus an optional wrapped cause.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same code, so wrapped copies still satisfy errors.Is(err, ErrX).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	ErrTenantNotFound   = newError(KindNotFound, "TENANT_NOT_FOUND", "tenant not found")
	ErrUserNotFound     = newError(KindNotFound, "USER_NOT_FOUND", "user not found")
	ErrEmployeeNotFound = newError(KindNotFound, "EMPLOYEE_NOT_FOUND", "employee not found")
	ErrCycleNotFound    = newError(KindNotFound, "CYCLE_NOT_FOUND", "pay cycle not found")
	ErrPayslipNotFound  = newError(KindNotFound, "PAYSLIP_NOT_FOUND", "payslip not found")
	ErrPaymentNotFound  = newError(KindNotFound, "PAYMENT_NOT_FOUND", "payment not found")

	ErrNonPositiveAmount      = newError(KindInvariant, "NON_POSITIVE_AMOUNT", "amount must be greater than zero")
	ErrAmountExceedsRemaining = newError(KindInvariant, "AMOUNT_EXCEEDS_REMAINING", "amount exceeds the remaining balance of the payslip")
	ErrPayslipAlreadyPaid     = newError(KindInvariant, "PAYSLIP_ALREADY_PAID", "payslip is already fully paid")
	ErrInvalidPaymentMode     = newError(KindInvariant, "INVALID_PAYMENT_MODE", "unknown payment mode")
	ErrInvalidContract        = newError(KindInvariant, "INVALID_CONTRACT_TYPE", "unknown contract type")
	ErrNonPositiveRate        = newError(KindInvariant, "NON_POSITIVE_RATE", "pay rate must be greater than zero")
	ErrDaysWorkedRequired     = newError(KindInvariant, "DAYS_WORKED_REQUIRED", "days worked is required for daily contracts")
	ErrInvalidInput           = newError(KindInvariant, "INVALID_INPUT", "invalid input")

	ErrCycleClosed         = newError(KindState, "CYCLE_CLOSED", "pay cycle is closed")
	ErrInvalidTransition   = newError(KindState, "INVALID_TRANSITION", "pay cycle status transition not allowed")
	ErrNoPayslipsGenerated = newError(KindState, "NO_PAYSLIPS_GENERATED", "no payslips generated for this cycle")
	ErrCycleNotDraft       = newError(KindState, "CYCLE_NOT_DRAFT", "pay cycle is no longer a draft")
	ErrCycleNotApproved    = newError(KindState, "CYCLE_NOT_APPROVED", "pay cycle has not been approved")
	ErrTenantProvisioned   = newError(KindState, "TENANT_ALREADY_PROVISIONED", "tenant database is already provisioned")

	ErrForbidden          = newError(KindForbidden, "FORBIDDEN", "access denied")
	ErrInvalidCredentials = newError(KindUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	ErrInvalidToken       = newError(KindUnauthorized, "INVALID_TOKEN", "invalid or expired token")

	ErrTenantNotProvisioned = newError(KindInfrastructure, "TENANT_NOT_PROVISIONED", "tenant database is not provisioned")
	ErrDatabase             = newError(KindInfrastructure, "DATABASE_ERROR", "database error")
)

// Wrap returns a copy of base with extra detail appended to the message.
func Wrap(base *Error, format string, args ...any) *Error {
	e := *base
	e.Message = base.Message + ": " + fmt.Sprintf(format, args...)
	return &e
}

// Infra wraps an unexpected lower-level error as a DATABASE_ERROR.
func Infra(err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	e := *ErrDatabase
	e.Err = err
	return &e
}

// As extracts the *Error from err, if any.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func HTTPStatus(err error) int {
	ae, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvariant, KindState:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
