package repositories

import (
	"gin-taskboard/models"

	"gorm.io/gorm"
)

type ICategoryRepository interface {
	FindAll(userID uint) (*[]models.Category, error)
	FindById(categoryID uint, userID uint) (*models.Category, error)
	Create(newCategory models.Category) (*models.Category, error)
	Delete(categoryID uint, userID uint) error
}

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) ICategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindAll(userID uint) (*[]models.Category, error) {
	var categories []models.Category
	result := r.db.Where("user_id = ?", userID).Order("name asc").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return &categories, nil
}

func (r *CategoryRepository) FindById(categoryID uint, userID uint) (*models.Category, error) {
	var category models.Category
	result := r.db.First(&category, "id = ? AND user_id = ?", categoryID, userID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &category, nil
}

func (r *CategoryRepository) Create(newCategory models.Category) (*models.Category, error) {
	result := r.db.Create(&newCategory)
	if result.Error != nil {
		return nil, result.Error
	}
	return &newCategory, nil
}

// Delete カテゴリ削除。紐づくTodoは削除せずカテゴリ参照だけ外す。
// 参照クリアと削除をトランザクションで囲む。
func (r *CategoryRepository) Delete(categoryID uint, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Todo{}).
			Where("category_id = ? AND user_id = ?", categoryID, userID).
			Update("category_id", nil)
		if result.Error != nil {
			return result.Error
		}

		result = tx.Delete(&models.Category{}, "id = ? AND user_id = ?", categoryID, userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
