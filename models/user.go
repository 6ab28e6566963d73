package models

import "time"

type User struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Email      string     `gorm:"not null;unique" json:"email"`
	Password   string     `gorm:"not null" json:"-"`
	Role       string     `gorm:"not null;default:'USER'" json:"role"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Todos      []Todo     `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Categories []Category `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}
