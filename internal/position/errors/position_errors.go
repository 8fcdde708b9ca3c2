package positionerrors

import (
	"net/http"

	"go-hrportal/internal/shared/apperror"
)

var (
	ErrPositionNotFound = apperror.New(
		apperror.CodeNotFound,
		"position not found",
		http.StatusNotFound,
	)
	ErrPositionNameTaken = apperror.New(
		apperror.CodeConflict,
		"position with the same name already exists in this department",
		http.StatusConflict,
	)
	ErrPositionInUse = apperror.New(
		apperror.CodeConflict,
		"position is referenced by existing employees",
		http.StatusConflict,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
)
