package departmenterrors

import (
	"net/http"

	"go-hrportal/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrDepartmentNameTaken = apperror.New(
		apperror.CodeConflict,
		"department with the same name already exists",
		http.StatusConflict,
	)
	ErrDepartmentInUse = apperror.New(
		apperror.CodeConflict,
		"department is referenced by existing positions or employees",
		http.StatusConflict,
	)
)
