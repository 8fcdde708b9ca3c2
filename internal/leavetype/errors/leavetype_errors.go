package leavetypeerrors

import (
	"net/http"

	"go-hrportal/internal/shared/apperror"
)

var (
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrLeaveTypeNameTaken = apperror.New(
		apperror.CodeConflict,
		"leave type name is already in use",
		http.StatusConflict,
	)
	ErrLeaveTypeInUse = apperror.New(
		apperror.CodeConflict,
		"leave type is referenced by existing requests or balances and cannot be deleted",
		http.StatusConflict,
	)
	ErrInvalidDefaultDays = apperror.New(
		apperror.CodeInvalidInput,
		"default_days must be zero or positive",
		http.StatusBadRequest,
	)
)
