package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func parseQuery(query string) Params {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/audit-logs?"+query, nil)
	return Parse(c)
}

func TestParse(t *testing.T) {
	assert.Equal(t, Params{Page: 1, Limit: 20, Offset: 0}, parseQuery(""))
	assert.Equal(t, Params{Page: 3, Limit: 10, Offset: 20}, parseQuery("page=3&limit=10"))
	assert.Equal(t, Params{Page: 1, Limit: 100, Offset: 0}, parseQuery("limit=5000"))
	assert.Equal(t, Params{Page: 1, Limit: 20, Offset: 0}, parseQuery("page=-2&limit=abc"))
}
