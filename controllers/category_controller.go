package controllers

import (
	"gin-taskboard/constants"
	"gin-taskboard/dto"
	"gin-taskboard/infra"
	"gin-taskboard/models"
	"gin-taskboard/services"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type ICategoryController interface {
	FindAll(ctx *gin.Context)
	Create(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type CategoryController struct {
	service services.ICategoryService
}

func NewCategoryController(service services.ICategoryService) ICategoryController {
	return &CategoryController{service: service}
}

func (c *CategoryController) FindAll(ctx *gin.Context) {
	user, exists := ctx.Get("user")
	if !exists {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	userID := user.(*models.User).ID

	categories, err := c.service.FindAll(userID)
	if err != nil {
		infra.Logger.Error().Err(err).Msg("Find categories failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

func (c *CategoryController) Create(ctx *gin.Context) {
	user, exists := ctx.Get("user")
	if !exists {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	userID := user.(*models.User).ID

	var input dto.CreateCategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	newCategory, err := c.service.Create(input, userID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE constraint") {
			ctx.JSON(http.StatusConflict, gin.H{"error": constants.ErrCategoryExists})
			return
		}
		infra.Logger.Error().Err(err).Msg("Create category failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
		return
	}

	ctx.JSON(http.StatusCreated, newCategory)
}

func (c *CategoryController) Delete(ctx *gin.Context) {
	user, exists := ctx.Get("user")
	if !exists {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	userID := user.(*models.User).ID

	categoryID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidID})
		return
	}

	if err := c.service.Delete(uint(categoryID), userID); err != nil {
		if err.Error() == constants.ErrCategoryNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": constants.ErrCategoryNotFound})
			return
		}
		infra.Logger.Error().Err(err).Msg("Delete category failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
