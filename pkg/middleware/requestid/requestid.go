// Package requestid tags every request with an identifier the logger and
// clients can correlate on.
package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header carries the request id on both the request and the response.
const Header = "X-Request-ID"

const ctxKey = "request_id"

// Middleware reuses an incoming request id or mints a fresh one, stores it
// on the context and echoes it on the response.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ctxKey, id)
		c.Writer.Header().Set(Header, id)

		c.Next()
	}
}

// Value returns the id assigned to this request, or "" outside the
// middleware.
func Value(c *gin.Context) string {
	v, _ := c.Get(ctxKey)
	id, _ := v.(string)
	return id
}
