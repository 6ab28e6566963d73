package services

import (
	"errors"
	"gin-taskboard/constants"
	"gin-taskboard/dto"
	"gin-taskboard/models"
	"gin-taskboard/repositories"

	"gorm.io/gorm"
)

type ITodoService interface {
	FindAll(userID uint, filter dto.TodoFilter) (*[]models.Todo, error)
	FindById(todoID uint, userID uint) (*models.Todo, error)
	Create(createTodoInput dto.CreateTodoInput, userID uint) (*models.Todo, error)
	Update(todoID uint, userID uint, updateTodoInput dto.UpdateTodoInput) (*models.Todo, error)
	Delete(todoID uint, userID uint) error
}

type TodoService struct {
	repository         repositories.ITodoRepository
	categoryRepository repositories.ICategoryRepository
}

func NewTodoService(repository repositories.ITodoRepository, categoryRepository repositories.ICategoryRepository) ITodoService {
	return &TodoService{
		repository:         repository,
		categoryRepository: categoryRepository,
	}
}

func (s *TodoService) FindAll(userID uint, filter dto.TodoFilter) (*[]models.Todo, error) {
	return s.repository.FindAll(userID, filter)
}

func (s *TodoService) FindById(todoID uint, userID uint) (*models.Todo, error) {
	todo, err := s.repository.FindById(todoID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(constants.ErrTodoNotFound)
		}
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) Create(createTodoInput dto.CreateTodoInput, userID uint) (*models.Todo, error) {
	priority := createTodoInput.Priority
	if priority == "" {
		priority = constants.PriorityMedium
	}
	if !constants.ValidPriority(priority) {
		return nil, errors.New(constants.ErrInvalidInput)
	}

	status := createTodoInput.Status
	if status == "" {
		status = constants.StatusTodo
	}
	if !constants.ValidStatus(status) {
		return nil, errors.New(constants.ErrInvalidInput)
	}

	// カテゴリは自分のものだけ指定できる
	if createTodoInput.CategoryID != nil {
		if err := s.verifyCategoryOwner(*createTodoInput.CategoryID, userID); err != nil {
			return nil, err
		}
	}

	newTodo := models.Todo{
		Title:       createTodoInput.Title,
		Description: createTodoInput.Description,
		Priority:    priority,
		Status:      status,
		DueDate:     createTodoInput.DueDate,
		CategoryID:  createTodoInput.CategoryID,
		UserID:      userID,
	}
	return s.repository.Create(newTodo)
}

// Update 部分更新。リクエストに無いキーは据え置き、明示的なnullは
// クリア（dueDate / categoryId）、値ありは上書き。
func (s *TodoService) Update(todoID uint, userID uint, updateTodoInput dto.UpdateTodoInput) (*models.Todo, error) {
	updates := map[string]interface{}{}

	if updateTodoInput.Title.Set {
		if !updateTodoInput.Title.Valid || updateTodoInput.Title.Value == "" {
			return nil, errors.New(constants.ErrInvalidInput)
		}
		updates["title"] = updateTodoInput.Title.Value
	}

	if updateTodoInput.Description.Set {
		if updateTodoInput.Description.Valid {
			updates["description"] = updateTodoInput.Description.Value
		} else {
			updates["description"] = ""
		}
	}

	if updateTodoInput.IsCompleted.Set {
		if !updateTodoInput.IsCompleted.Valid {
			return nil, errors.New(constants.ErrInvalidInput)
		}
		updates["is_completed"] = updateTodoInput.IsCompleted.Value
	}

	if updateTodoInput.Priority.Set {
		if !updateTodoInput.Priority.Valid || !constants.ValidPriority(updateTodoInput.Priority.Value) {
			return nil, errors.New(constants.ErrInvalidInput)
		}
		updates["priority"] = updateTodoInput.Priority.Value
	}

	if updateTodoInput.Status.Set {
		if !updateTodoInput.Status.Valid || !constants.ValidStatus(updateTodoInput.Status.Value) {
			return nil, errors.New(constants.ErrInvalidInput)
		}
		updates["status"] = updateTodoInput.Status.Value
	}

	if updateTodoInput.DueDate.Set {
		if updateTodoInput.DueDate.Valid {
			updates["due_date"] = updateTodoInput.DueDate.Value
		} else {
			updates["due_date"] = nil
		}
	}

	if updateTodoInput.CategoryID.Set {
		if updateTodoInput.CategoryID.Valid {
			if err := s.verifyCategoryOwner(updateTodoInput.CategoryID.Value, userID); err != nil {
				return nil, err
			}
			updates["category_id"] = updateTodoInput.CategoryID.Value
		} else {
			updates["category_id"] = nil
		}
	}

	if len(updates) == 0 {
		return s.FindById(todoID, userID)
	}

	updatedTodo, err := s.repository.Update(todoID, userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(constants.ErrTodoNotFound)
		}
		return nil, err
	}
	return updatedTodo, nil
}

func (s *TodoService) Delete(todoID uint, userID uint) error {
	err := s.repository.Delete(todoID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New(constants.ErrTodoNotFound)
		}
		return err
	}
	return nil
}

func (s *TodoService) verifyCategoryOwner(categoryID uint, userID uint) error {
	_, err := s.categoryRepository.FindById(categoryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New(constants.ErrCategoryNotFound)
		}
		return err
	}
	return nil
}
