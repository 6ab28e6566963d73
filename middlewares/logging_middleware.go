package middlewares

import (
	"gin-taskboard/infra"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger リクエストごとのアクセスログ
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		infra.Logger.Info().
			Str("ip", ctx.ClientIP()).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", ctx.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
