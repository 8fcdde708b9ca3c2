package notificationerrors

import (
	"net/http"

	"go-hrportal/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
	ErrNotificationForbidden = apperror.New(
		apperror.CodeForbidden,
		"notification belongs to another recipient",
		http.StatusForbidden,
	)
	ErrInvalidRecipientID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid recipient id",
		http.StatusBadRequest,
	)
)
