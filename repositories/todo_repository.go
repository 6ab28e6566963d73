package repositories

import (
	"fmt"
	"gin-taskboard/dto"
	"gin-taskboard/models"

	"gorm.io/gorm"
)

// sortableColumns ソート可能なフィールドとカラム名の対応表。
// ここに無いフィールドでのソートは許可しない。
var sortableColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"dueDate":   "due_date",
	"priority":  "priority",
	"status":    "status",
	"title":     "title",
}

// SortableField ソート指定に使えるフィールドかどうかを返す
func SortableField(field string) bool {
	_, ok := sortableColumns[field]
	return ok
}

type ITodoRepository interface {
	FindAll(userID uint, filter dto.TodoFilter) (*[]models.Todo, error)
	FindById(todoID uint, userID uint) (*models.Todo, error)
	Create(newTodo models.Todo) (*models.Todo, error)
	Update(todoID uint, userID uint, updates map[string]interface{}) (*models.Todo, error)
	Delete(todoID uint, userID uint) error
}

type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) ITodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) FindAll(userID uint, filter dto.TodoFilter) (*[]models.Todo, error) {
	query := r.db.Where("user_id = ?", userID).Preload("Category")

	if filter.IsCompleted != nil {
		query = query.Where("is_completed = ?", *filter.IsCompleted)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	// デフォルトは作成日時の降順
	column, ok := sortableColumns[filter.SortBy]
	if !ok {
		query = query.Order("created_at desc")
	} else {
		direction := "asc"
		if filter.SortOrder == "desc" {
			direction = "desc"
		}
		query = query.Order(fmt.Sprintf("%s %s", column, direction))
	}

	var todos []models.Todo
	result := query.Find(&todos)
	if result.Error != nil {
		return nil, result.Error
	}
	return &todos, nil
}

func (r *TodoRepository) FindById(todoID uint, userID uint) (*models.Todo, error) {
	var todo models.Todo
	result := r.db.Preload("Category").First(&todo, "id = ? AND user_id = ?", todoID, userID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &todo, nil
}

func (r *TodoRepository) Create(newTodo models.Todo) (*models.Todo, error) {
	result := r.db.Create(&newTodo)
	if result.Error != nil {
		return nil, result.Error
	}
	return r.FindById(newTodo.ID, newTodo.UserID)
}

// Update 所有者チェックと更新を1つの条件付きUPDATEで行う。
// 対象行が無い（存在しない、または他人の行）場合はErrRecordNotFound。
func (r *TodoRepository) Update(todoID uint, userID uint, updates map[string]interface{}) (*models.Todo, error) {
	result := r.db.Model(&models.Todo{}).
		Where("id = ? AND user_id = ?", todoID, userID).
		Updates(updates)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindById(todoID, userID)
}

func (r *TodoRepository) Delete(todoID uint, userID uint) error {
	result := r.db.Delete(&models.Todo{}, "id = ? AND user_id = ?", todoID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
