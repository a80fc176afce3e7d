package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/styledecor/styledecor/internal/domain"
)

// response is the stable client-facing envelope used by every endpoint.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, response{Success: true, Message: message, Data: data})
}

func respondList(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, response{Success: true, Data: data, Count: &count})
}

// respondErr translates tagged domain errors into the envelope. Untagged
// errors become a generic 500; internal detail is only exposed in debug mode.
func respondErr(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	msg := domain.Message(err)

	body := response{Success: false, Message: msg}
	if kind == domain.KindInternal {
		body.Message = "internal server error"
		if gin.Mode() == gin.DebugMode {
			body.Error = err.Error()
		}
	}
	c.JSON(statusForKind(kind), body)
}

func statusForKind(kind domain.Kind) int {
	switch kind {
	case domain.KindInvalidInput, domain.KindInvalidState:
		return http.StatusBadRequest
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
