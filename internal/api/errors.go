package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipemint/backend/internal/ledger"
	"github.com/pageza/recipemint/backend/internal/middleware"
	"github.com/pageza/recipemint/backend/internal/service"
	"github.com/pageza/recipemint/backend/internal/types"
)

var errMissingCaller = errors.New("caller not authenticated")

// StatusFor maps a ledger error kind to its HTTP status
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrNotFound), errors.Is(err, ledger.ErrInvalidID):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrAlreadyExists), errors.Is(err, ledger.ErrAlreadyVoted):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrNotForSale):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrPaymentMismatch),
		errors.Is(err, ledger.ErrInvalidPrice),
		errors.Is(err, ledger.ErrInvalidFee),
		errors.Is(err, ledger.ErrRoyaltyTooHigh),
		errors.Is(err, ledger.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrPayoutFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, errMissingCaller):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respondError records err on the context and writes the mapped status.
// Internal errors are not echoed to the client.
func respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	c.Error(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.JSON(status, types.ErrorResponse{Error: msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: msg})
}

// parseID reads a numeric path parameter
func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// caller returns the authenticated address or writes a 401
func caller(c *gin.Context) (string, bool) {
	addr, ok := middleware.CallerAddress(c)
	if !ok {
		respondError(c, errMissingCaller)
		return "", false
	}
	return addr, true
}
