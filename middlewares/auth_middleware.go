package middlewares

import (
	"gin-taskboard/constants"
	"gin-taskboard/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware セッションクッキーのトークンを検証し、
// ユーザーをコンテキストに載せる。クッキー無し・署名/期限不正・
// ユーザー削除済みはすべて401。
func AuthMiddleware(authService services.IAuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := ctx.Cookie(constants.SessionCookieName)
		if err != nil || tokenString == "" {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		user, err := authService.GetUserFromToken(tokenString)
		if err != nil {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx.Set("user", user)

		ctx.Next()
	}
}
