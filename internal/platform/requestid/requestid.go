package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

const Header = "X-Request-ID"

// New attaches a ULID request id to every request that does not carry one,
// and echoes it on the response.
func New() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			id = ulid.Make().String()
		}
		c.Set(Header, id)
		c.Header(Header, id)
		c.Next()
	}
}
