package controllers

import (
	"gin-taskboard/constants"
	"gin-taskboard/dto"
	"gin-taskboard/infra"
	"gin-taskboard/models"
	"gin-taskboard/services"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

type IAuthController interface {
	Register(ctx *gin.Context)
	Login(ctx *gin.Context)
	Logout(ctx *gin.Context)
	Me(ctx *gin.Context)
}

type AuthController struct {
	service services.IAuthService
}

func NewAuthController(service services.IAuthService) IAuthController {
	return &AuthController{service: service}
}

func (c *AuthController) Register(ctx *gin.Context) {
	var input dto.RegisterInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	newUser, err := c.service.Register(input.Email, input.Password)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE constraint") {
			ctx.JSON(http.StatusConflict, gin.H{"error": constants.ErrEmailExists})
			return
		}
		infra.Logger.Error().Err(err).Msg("Register failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
		return
	}

	ctx.JSON(http.StatusCreated, dto.RegisterResponse{ID: newUser.ID, Email: newUser.Email})
}

func (c *AuthController) Login(ctx *gin.Context) {
	var input dto.LoginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	user, token, err := c.service.Login(input.Email, input.Password)
	if err != nil {
		if err.Error() == constants.ErrInvalidCredentials {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": constants.ErrInvalidCredentials})
			return
		}
		infra.Logger.Error().Err(err).Msg("Login failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
		return
	}

	setSessionCookie(ctx, token, int(services.TokenLifetime.Seconds()))
	ctx.JSON(http.StatusOK, dto.UserResponse{ID: user.ID, Email: user.Email, Role: user.Role})
}

// Logout クッキーを即時失効させる。冪等で常に成功する。
func (c *AuthController) Logout(ctx *gin.Context) {
	setSessionCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (c *AuthController) Me(ctx *gin.Context) {
	user, exists := ctx.Get("user")
	if !exists {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	userID := user.(*models.User).ID

	// トークン発行後に削除されたユーザーは404
	currentUser, err := c.service.FindUserById(userID)
	if err != nil {
		if err.Error() == constants.ErrUserNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": constants.ErrUserNotFound})
			return
		}
		infra.Logger.Error().Err(err).Msg("Me failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
		return
	}

	ctx.JSON(http.StatusOK, dto.UserResponse{ID: currentUser.ID, Email: currentUser.Email, Role: currentUser.Role})
}

// setSessionCookie HttpOnly + SameSite=Strict。本番のみSecure。
func setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	secure := os.Getenv("ENV") == "prod"
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(constants.SessionCookieName, token, maxAge, "/", "", secure, true)
}
