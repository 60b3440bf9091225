package http_bodylimit_middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// New caps request body size. Oversized bodies surface as read errors
// inside the JSON binding, which handlers answer with 400.
func New(maxBytes int64) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Body != nil {
			ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxBytes)
		}
		ctx.Next()
	}
}
