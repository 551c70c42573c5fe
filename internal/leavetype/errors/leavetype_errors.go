package leavetypeerrors

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
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrLeaveTypeNotEditable = apperror.New(
		apperror.CodeNotFound,
		"leave type not found or not editable",
		http.StatusNotFound,
	)
	ErrNothingToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"no updatable fields were provided",
		http.StatusBadRequest,
	)
)
