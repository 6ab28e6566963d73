package controllers

import (
	"errors"
	"gin-taskboard/constants"
	"gin-taskboard/dto"
	"gin-taskboard/infra"
	"gin-taskboard/models"
	"gin-taskboard/repositories"
	"gin-taskboard/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

var errInvalidFilter = errors.New(constants.ErrInvalidQuery)

type ITodoController interface {
	FindAll(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type TodoController struct {
	service services.ITodoService
}

func NewTodoController(service services.ITodoService) ITodoController {
	return &TodoController{service: service}
}

func (c *TodoController) FindAll(ctx *gin.Context) {
	user, exists := ctx.Get("user")
	if !exists {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	userID := user.(*models.User).ID

	filter, err := buildTodoFilter(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidQuery})
		return
	}

	todos, err := c.service.FindAll(userID, *filter)
	if err != nil {
		infra.Logger.Error().Err(err).Msg("Find todos failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
		return
	}

	ctx.JSON(http.StatusOK, todos)
}

func (c *TodoController) Create(ctx *gin.Context) {
	user, exists := ctx.Get("user")
	if !exists {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	userID := user.(*models.User).ID

	var input dto.CreateTodoInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	newTodo, err := c.service.Create(input, userID)
	if err != nil {
		switch err.Error() {
		case constants.ErrInvalidInput:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		case constants.ErrCategoryNotFound:
			ctx.JSON(http.StatusNotFound, gin.H{"error": constants.ErrCategoryNotFound})
		default:
			infra.Logger.Error().Err(err).Msg("Create todo failed")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
		}
		return
	}

	ctx.JSON(http.StatusCreated, newTodo)
}

func (c *TodoController) Update(ctx *gin.Context) {
	user, exists := ctx.Get("user")
	if !exists {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	userID := user.(*models.User).ID

	todoID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidID})
		return
	}

	var input dto.UpdateTodoInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		return
	}

	updatedTodo, err := c.service.Update(uint(todoID), userID, input)
	if err != nil {
		switch err.Error() {
		case constants.ErrInvalidInput:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidInput})
		case constants.ErrTodoNotFound:
			ctx.JSON(http.StatusNotFound, gin.H{"error": constants.ErrTodoNotFound})
		case constants.ErrCategoryNotFound:
			ctx.JSON(http.StatusNotFound, gin.H{"error": constants.ErrCategoryNotFound})
		default:
			infra.Logger.Error().Err(err).Msg("Update todo failed")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
		}
		return
	}

	ctx.JSON(http.StatusOK, updatedTodo)
}

func (c *TodoController) Delete(ctx *gin.Context) {
	user, exists := ctx.Get("user")
	if !exists {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	userID := user.(*models.User).ID

	todoID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidID})
		return
	}

	if err := c.service.Delete(uint(todoID), userID); err != nil {
		if err.Error() == constants.ErrTodoNotFound {
			ctx.JSON(http.StatusNotFound, gin.H{"error": constants.ErrTodoNotFound})
			return
		}
		infra.Logger.Error().Err(err).Msg("Delete todo failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": constants.ErrUnexpected})
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteTodoResponse{DeletedTodoID: uint(todoID)})
}

// buildTodoFilter クエリパラメータを検証済みのTodoFilterに組み立てる。
// ソートフィールドは固定の対応表に無ければ拒否する。
func buildTodoFilter(ctx *gin.Context) (*dto.TodoFilter, error) {
	var filter dto.TodoFilter

	if v := ctx.Query("isCompleted"); v != "" {
		isCompleted, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		filter.IsCompleted = &isCompleted
	}

	if v := ctx.Query("status"); v != "" {
		if !constants.ValidStatus(v) {
			return nil, errInvalidFilter
		}
		filter.Status = &v
	}

	if v := ctx.Query("priority"); v != "" {
		if !constants.ValidPriority(v) {
			return nil, errInvalidFilter
		}
		filter.Priority = &v
	}

	if v := ctx.Query("categoryId"); v != "" {
		categoryID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, err
		}
		id := uint(categoryID)
		filter.CategoryID = &id
	}

	if v := ctx.Query("sortBy"); v != "" {
		if !repositories.SortableField(v) {
			return nil, errInvalidFilter
		}
		filter.SortBy = v
	}
	filter.SortOrder = ctx.Query("sortOrder")

	return &filter, nil
}
