package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-floor/services"
	"github.com/yeremiapane/restaurant-floor/utils"
)

var errInternal = errors.New("internal server error")

func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindValidationFailed:
		return http.StatusUnprocessableEntity
	case services.KindInvalidTransitionPayload:
		return http.StatusBadRequest
	case services.KindInvalidStateTransition, services.KindCapacityExceeded, services.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondServiceError writes business errors with their mapped status and
// hides everything else behind a 500.
func respondServiceError(c *gin.Context, err error) {
	var be *services.BusinessError
	if errors.As(err, &be) {
		if len(be.Fields) > 0 {
			utils.RespondErrors(c, statusFor(be.Kind), be, be.Fields)
			return
		}
		utils.RespondError(c, statusFor(be.Kind), be)
		return
	}

	utils.ErrorLogger.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
	}).WithError(err).Error("request failed")
	utils.RespondError(c, http.StatusInternalServerError, errInternal)
}

// staffName is the identity the auth middleware put on the request.
func staffName(c *gin.Context) string {
	return c.GetString("name")
}
