package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"acservice/internal/service"
	"acservice/pkg/response"

	"github.com/gin-gonic/gin"
)

var statusBySentinel = []struct {
	err    error
	status int
}{
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrInvalidInput, http.StatusBadRequest},
	{service.ErrConflict, http.StatusConflict},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
}

// writeError maps a service error to its status code and a user-facing message.
// Errors outside the sentinel set are logged and reported as 500.
func writeError(c *gin.Context, err error) {
	for _, m := range statusBySentinel {
		if errors.Is(err, m.err) {
			c.JSON(m.status, response.Error(m.status, publicMessage(err, m.err)))
			return
		}
	}
	log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Internal server error"))
}

// publicMessage drops the "<sentinel>: " prefix added by fmt.Errorf wrapping
func publicMessage(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func badPayload(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
}
