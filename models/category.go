package models

import "time"

// Category カテゴリ名はユーザーごとに一意
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_category_user_name" json:"name"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_category_user_name" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
