package model

import (
	"gorm.io/gorm"
)

// Excuse belongs to exactly one Category. Soft-deleted excuses stay in
// storage but never reach the admin list or the public API.
type Excuse struct {
	ID         uint           `gorm:"primaryKey"`
	Content    string         `gorm:"type:text;not null"`
	CategoryID uint           `gorm:"index;not null"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	Category *Category
}
