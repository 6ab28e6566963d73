package models

import "time"

type Todo struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	IsCompleted bool       `gorm:"not null;default:false" json:"isCompleted"`
	Priority    string     `gorm:"not null;default:'MEDIUM'" json:"priority"`
	Status      string     `gorm:"not null;default:'TODO'" json:"status"`
	DueDate     *time.Time `json:"dueDate"`
	CategoryID  *uint      `gorm:"index" json:"categoryId"`
	Category    *Category  `gorm:"constraint:OnDelete:SET NULL;" json:"category"`
	UserID      uint       `gorm:"not null;index" json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
