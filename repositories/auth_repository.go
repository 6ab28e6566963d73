package repositories

import (
	"errors"
	"gin-taskboard/constants"
	"gin-taskboard/models"

	"gorm.io/gorm"
)

type IAuthRepository interface {
	CreateUser(user models.User) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(userID uint) (*models.User, error)
	FindAllUsers() (*[]models.User, error)
}

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) IAuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) CreateUser(user models.User) (*models.User, error) {
	result := r.db.Create(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *AuthRepository) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.New(constants.ErrUserNotFound)
		}
		return nil, result.Error
	}
	return &user, nil
}

func (r *AuthRepository) FindUserByID(userID uint) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, "id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.New(constants.ErrUserNotFound)
		}
		return nil, result.Error
	}
	return &user, nil
}

func (r *AuthRepository) FindAllUsers() (*[]models.User, error) {
	var users []models.User
	result := r.db.Order("id asc").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return &users, nil
}
