package controllers

import (
	"gin-taskboard/constants"
	"gin-taskboard/dto"
	"gin-taskboard/infra"
	"gin-taskboard/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type IAdminController interface {
	FindAllUsers(ctx *gin.Context)
}

// AdminController 管理者ロール専用のエンドポイント
type AdminController struct {
	service services.IAuthService
}

func NewAdminController(service services.IAuthService) IAdminController {
	return &AdminController{service: service}
}

func (c *AdminController) FindAllUsers(ctx *gin.Context) {
	users, err := c.service.FindAllUsers()
	if err != nil {
		infra.Logger.Error().Err(err).Msg("Find users failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
		return
	}

	responses := make([]dto.UserResponse, 0, len(*users))
	for _, user := range *users {
		responses = append(responses, dto.UserResponse{ID: user.ID, Email: user.Email, Role: user.Role})
	}

	ctx.JSON(http.StatusOK, responses)
}
