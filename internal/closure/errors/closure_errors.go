package closureerrors

import (
	"net/http"

	"powerleave/internal/shared/apperror"
)

var (
	ErrInvalidOrgID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid org id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusUnprocessableEntity,
	)
	ErrClosureNotFound = apperror.New(
		apperror.CodeNotFound,
		"closure not found",
		http.StatusNotFound,
	)
	ErrClosureNotDeletable = apperror.New(
		apperror.CodeNotFound,
		"closure not found in this organization",
		http.StatusNotFound,
	)
	ErrExceptionsNotAllowed = apperror.New(
		apperror.CodeInvalidState,
		"this closure does not accept exception requests",
		http.StatusConflict,
	)
	ErrExceptionAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"an exception request for this closure is already open or approved",
		http.StatusConflict,
	)
	ErrExceptionNotFound = apperror.New(
		apperror.CodeNotFound,
		"exception request not found",
		http.StatusNotFound,
	)
	ErrExceptionAlreadyReviewed = apperror.New(
		apperror.CodeInvalidState,
		"exception request has already been reviewed",
		http.StatusConflict,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found in this organization",
		http.StatusNotFound,
	)
)
