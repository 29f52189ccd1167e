package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

var kindStatus = map[Kind]int{
	KindValidation:        http.StatusBadRequest,
	KindAuthorization:     http.StatusForbidden,
	KindConflict:          http.StatusConflict,
	KindInvalidTransition: http.StatusUnprocessableEntity,
	KindNotFound:          http.StatusNotFound,
	KindTransient:         http.StatusServiceUnavailable,
}

var kindMessage = map[Kind]string{
	KindValidation:        "Invalid input.",
	KindAuthorization:     "You are not allowed to perform this action.",
	KindConflict:          "The request conflicts with existing state.",
	KindInvalidTransition: "This booking can no longer be modified.",
	KindNotFound:          "No longer available.",
	KindTransient:         "Temporarily unavailable, please try again.",
}

// Respond maps a business error to its HTTP status. Anything that is not a
// BusinessError is treated as an internal failure, never silently swallowed.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		Write(c, kindStatus[be.Kind], be.Code, kindMessage[be.Kind])
		return
	}
	Internal(c, "internal_error", "Something went wrong.")
}
