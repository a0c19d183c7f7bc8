package payroll

import (
	"payroll-backend/internal/apperr"
	"payroll-backend/internal/model"
)

// CheckTransition enforces DRAFT -> APPROVED -> CLOSED. CLOSED is terminal.
func CheckTransition(from, to model.CycleStatus) error {
	if from == model.CycleClosed {
		return apperr.ErrCycleClosed
	}
	switch {
	case from == model.CycleDraft && to == model.CycleApproved:
		return nil
	case from == model.CycleApproved && to == model.CycleClosed:
		return nil
	}
	return apperr.Wrap(apperr.ErrInvalidTransition, "%s -> %s", from, to)
}
