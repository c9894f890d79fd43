package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShoppingList struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Name      string             `gorm:"size:255;not null" json:"name"`
	StartDate *time.Time         `gorm:"type:date" json:"start_date"`
	EndDate   *time.Time         `gorm:"type:date" json:"end_date"`
	IsActive  bool               `gorm:"default:true" json:"is_active"`
	Items     []ShoppingListItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (l *ShoppingList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type ShoppingListItem struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt      time.Time   `json:"created_at"`
	ShoppingListID uuid.UUID   `gorm:"type:uuid;not null;index" json:"shopping_list_id"`
	IngredientID   *uuid.UUID  `gorm:"type:uuid" json:"ingredient_id"`
	Ingredient     *Ingredient `json:"ingredient,omitempty"`
	Name           string      `gorm:"size:255;not null" json:"name"`
	Quantity       *string     `gorm:"size:50" json:"quantity"`
	Unit           string      `gorm:"size:50" json:"unit"`
	Category       string      `gorm:"size:50;default:'other'" json:"category"`
	IsChecked      bool        `gorm:"default:false" json:"is_checked"`
	AddedManually  bool        `gorm:"default:false" json:"added_manually"`
}

func (i *ShoppingListItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
