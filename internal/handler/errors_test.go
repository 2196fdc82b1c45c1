package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"acservice/internal/service"
	"acservice/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{fmt.Errorf("%w: complaint not found", service.ErrNotFound), http.StatusNotFound, "Complaint not found"},
		{fmt.Errorf("%w: phone number already registered", service.ErrConflict), http.StatusConflict, "Phone number already registered"},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid phone or password"},
		{service.ErrForbidden, http.StatusForbidden, "Access denied"},
		{errors.New("pq: connection reset"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/complaint/x", nil)

			writeError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body response.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tt.status, body.StatusCode)
			assert.Equal(t, tt.message, body.Error)
		})
	}
}
