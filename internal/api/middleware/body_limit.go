package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"teacher-eval/backend/pkg/response"
)

// BodyLimit caps the request body. Witness uploads get their own, larger limit.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.TooLarge(c, 10005, "حجم الطلب كبير جداً")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.IsAborted() || c.Writer.Written() {
			return
		}
		for _, err := range c.Errors {
			if err.Err != nil && strings.Contains(err.Err.Error(), "request body too large") {
				response.TooLarge(c, 10005, "حجم الطلب كبير جداً")
				return
			}
		}
	}
}
