package appointmenterrors

import (
	"net/http"

	"go-hrportal/internal/shared/apperror"
)

var (
	ErrAppointmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"appointment not found",
		http.StatusNotFound,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected RFC3339",
		http.StatusBadRequest,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"ends_at must be after starts_at",
		http.StatusBadRequest,
	)
	ErrAppointmentOverlap = apperror.New(
		apperror.CodeConflict,
		"appointment overlaps an existing one for this employee",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidOrganizerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid organizer id",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid appointment status transition",
		http.StatusBadRequest,
	)
)
