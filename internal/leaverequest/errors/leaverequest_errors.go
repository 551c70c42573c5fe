package leaverequesterrors

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
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must be equal to or after start_date",
		http.StatusUnprocessableEntity,
	)
	ErrStartDateInPast = apperror.New(
		apperror.CodeInvalidInput,
		"start_date cannot be in the past",
		http.StatusUnprocessableEntity,
	)
	ErrDateTooFarInFuture = apperror.New(
		apperror.CodeInvalidInput,
		"dates cannot be more than 2 years in the future",
		http.StatusUnprocessableEntity,
	)
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found in this organization",
		http.StatusNotFound,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"a pending or approved request already covers this period",
		http.StatusConflict,
	)
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrAlreadyReviewed = apperror.New(
		apperror.CodeInvalidState,
		"leave request has already been reviewed",
		http.StatusConflict,
	)
)
