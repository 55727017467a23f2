package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pointdigital/manager-api/internal/model"
	"github.com/pointdigital/manager-api/internal/policy"
)

// OwnerWithdrawalDenied is shown to accountants creating owner withdrawals.
const OwnerWithdrawalDenied = "المحاسب لا يملك صلاحية إنشاء سحوبات المالك."

var (
	ErrUnauthenticated   = errors.New("authentication required")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrForbiddenCategory = fmt.Errorf("%w: %s", ErrPermissionDenied, OwnerWithdrawalDenied)
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrUpstream          = errors.New("upstream failure")

	// ErrInvalidStatus is returned by the quotation status action.
	ErrInvalidStatus = fmt.Errorf("%w: Invalid status", ErrInvalidInput)
)

// storeError maps repository errors onto the service sentinels.
func storeError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s already exists", ErrConflict, what)
	}
	return err
}

func authorize(p model.Principal, action policy.Action, resource policy.Resource) error {
	return decisionError(policy.Decide(p, action, resource), action, resource)
}

func decisionError(d policy.Decision, action policy.Action, resource policy.Resource) error {
	if d.Allowed() {
		return nil
	}
	switch d {
	case policy.Unauthenticated:
		return ErrUnauthenticated
	case policy.DenyCategory:
		return ErrForbiddenCategory
	}
	return fmt.Errorf("%w: %s on %s", ErrPermissionDenied, action, resource)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
