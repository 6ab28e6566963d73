package services

import (
	"errors"
	"gin-taskboard/constants"
	"gin-taskboard/dto"
	"gin-taskboard/models"
	"gin-taskboard/repositories"

	"gorm.io/gorm"
)

type ICategoryService interface {
	FindAll(userID uint) (*[]models.Category, error)
	Create(createCategoryInput dto.CreateCategoryInput, userID uint) (*models.Category, error)
	Delete(categoryID uint, userID uint) error
}

type CategoryService struct {
	repository repositories.ICategoryRepository
}

func NewCategoryService(repository repositories.ICategoryRepository) ICategoryService {
	return &CategoryService{repository: repository}
}

func (s *CategoryService) FindAll(userID uint) (*[]models.Category, error) {
	return s.repository.FindAll(userID)
}

func (s *CategoryService) Create(createCategoryInput dto.CreateCategoryInput, userID uint) (*models.Category, error) {
	newCategory := models.Category{
		Name:   createCategoryInput.Name,
		UserID: userID,
	}
	return s.repository.Create(newCategory)
}

func (s *CategoryService) Delete(categoryID uint, userID uint) error {
	err := s.repository.Delete(categoryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New(constants.ErrCategoryNotFound)
		}
		return err
	}
	return nil
}
