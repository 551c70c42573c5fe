package balanceerrors

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
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotInOrg = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this organization",
		http.StatusBadRequest,
	)
	ErrNegativeDebit = apperror.New(
		apperror.CodeInvalidInput,
		"debit amount must not be negative",
		http.StatusBadRequest,
	)
)
