package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PantryItem struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	IngredientID uuid.UUID  `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	Ingredient   Ingredient `json:"ingredient,omitempty"`
	Quantity     *string    `gorm:"size:50" json:"quantity"`
	Unit         string     `gorm:"size:50" json:"unit"`
	Notes        string     `gorm:"size:500" json:"notes"`
	ExpiresAt    *time.Time `gorm:"type:date" json:"expires_at"`
}

func (p *PantryItem) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
