package leavebalanceerrors

import (
	"net/http"

	"go-hrportal/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year must be a four digit calendar year",
		http.StatusBadRequest,
	)
	ErrInvalidEntitlement = apperror.New(
		apperror.CodeInvalidInput,
		"total_entitlement must be zero or positive",
		http.StatusBadRequest,
	)
	ErrBalanceNotProvisioned = apperror.New(
		apperror.CodeNotFound,
		"no leave balance has been provisioned for this employee, leave type and year",
		http.StatusNotFound,
	)
	ErrBalanceAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a leave balance already exists for this employee, leave type and year",
		http.StatusConflict,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidState,
		"insufficient leave balance for the requested days",
		http.StatusUnprocessableEntity,
	)
)
