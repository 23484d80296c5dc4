// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"carpool/internal/modules/account"
	"carpool/internal/modules/payment"
	"carpool/internal/modules/request"
	"carpool/internal/modules/ride"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeServiceError maps module errors to HTTP statuses. Unknown errors are logged and
// reported as 500 without detail.
func writeServiceError(c *gin.Context, err error) {
	var (
		reqInvalid     *request.ValidationError
		rideInvalid    *ride.ValidationError
		accountInvalid *account.ValidationError
	)
	switch {
	case errors.As(err, &reqInvalid):
		writeJSON(c, http.StatusBadRequest, errorResponse{Error: reqInvalid.Reason, Field: reqInvalid.Field})
	case errors.As(err, &rideInvalid):
		writeJSON(c, http.StatusBadRequest, errorResponse{Error: rideInvalid.Reason, Field: rideInvalid.Field})
	case errors.As(err, &accountInvalid):
		writeJSON(c, http.StatusBadRequest, errorResponse{Error: accountInvalid.Reason, Field: accountInvalid.Field})

	case errors.Is(err, request.ErrBadRequest),
		errors.Is(err, ride.ErrBadRequest),
		errors.Is(err, payment.ErrBadRequest),
		errors.Is(err, payment.ErrInvalidAmount):
		writeError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, account.ErrInvalidCredentials):
		writeError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, account.ErrLoginDisabled):
		writeError(c, http.StatusNotImplemented, err.Error())

	case errors.Is(err, request.ErrForbidden),
		errors.Is(err, ride.ErrForbidden):
		writeError(c, http.StatusForbidden, err.Error())

	case errors.Is(err, request.ErrNotFound),
		errors.Is(err, ride.ErrNotFound),
		errors.Is(err, payment.ErrRideNotFound),
		errors.Is(err, account.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, request.ErrInvalidState),
		errors.Is(err, ride.ErrInvalidState),
		errors.Is(err, ride.ErrConflict),
		errors.Is(err, account.ErrEmailTaken),
		errors.Is(err, account.ErrPlateTaken):
		writeError(c, http.StatusConflict, err.Error())

	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("handler: unexpected error")
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// bindJSON decodes the body into v and writes a 400 on failure.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}
