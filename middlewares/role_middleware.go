package middlewares

import (
	"gin-taskboard/models"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RoleBasedAccessControl 指定されたロールのみアクセスを許可するミドルウェア。
// AuthMiddlewareの後に使用することを想定（ctxに"user"が設定されている必要がある）。
// ロールはトークンのクレームではなくデータベースの値で判定する。
func RoleBasedAccessControl(allowedRoles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, exists := ctx.Get("user")
		if !exists {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		userModel, ok := user.(*models.User)
		if !ok {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		hasAccess := false
		userRole := strings.TrimSpace(strings.ToLower(userModel.Role))
		for _, allowedRole := range allowedRoles {
			if userRole == strings.TrimSpace(strings.ToLower(allowedRole)) {
				hasAccess = true
				break
			}
		}

		if !hasAccess {
			ctx.AbortWithStatus(http.StatusForbidden)
			return
		}

		ctx.Next()
	}
}
