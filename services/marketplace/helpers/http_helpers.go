package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"diamond-exchange/internal/marketerrors"
	model "diamond-exchange/internal/models"
	"diamond-exchange/utils"

	"github.com/gin-gonic/gin"
)

// actorKey is the gin context key holding the authenticated caller
const actorKey = "diamond-exchange.actor"

// SetActor stores the authenticated caller on the request context
func SetActor(c *gin.Context, actor model.Actor) {
	c.Set(actorKey, actor)
}

// Actor returns the authenticated caller. Routes outside the auth group get
// the zero Actor, which no policy rule admits.
func Actor(c *gin.Context) model.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(model.Actor); ok {
			return actor
		}
	}
	return model.Actor{}
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	var merr *marketerrors.Error
	if !errors.As(err, &merr) {
		return http.StatusInternalServerError, "internal server error"
	}

	switch merr.Kind {
	case marketerrors.KindNotFound:
		return http.StatusNotFound, merr.Message
	case marketerrors.KindNotAuthorized:
		return http.StatusForbidden, merr.Message
	case marketerrors.KindInvalidState, marketerrors.KindValidation:
		return http.StatusBadRequest, merr.Message
	case marketerrors.KindConflict:
		return http.StatusConflict, merr.Message
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// HandleServiceError writes the mapped error response and logs the failure.
// Server-side failures log at error level, client mistakes at warn.
func HandleServiceError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["error"] = err.Error()
	fields["code"] = marketerrors.CodeOf(err)
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request rejected", fields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
