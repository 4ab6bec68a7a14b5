package model

import (
	"gorm.io/gorm"
)

// Category groups excuses by audience (Desarrolladores, Testers, …).
// DeletedAt implements soft deletion: GORM excludes soft-deleted rows from
// every query unless Unscoped is used, so "deleted never appears in public
// reads" holds by construction.
type Category struct {
	ID        uint           `gorm:"primaryKey"`
	Name      string         `gorm:"size:255;not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Excuses []Excuse `gorm:"constraint:OnDelete:CASCADE"`
}
