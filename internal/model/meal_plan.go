package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealPlan struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	MealType    string    `gorm:"size:20;not null" json:"meal_type"`
	RecipeID    uuid.UUID `gorm:"type:uuid;not null" json:"recipe_id"`
	Recipe      Recipe    `json:"recipe,omitempty"`
	Servings    int       `gorm:"default:1" json:"servings"`
	Notes       string    `gorm:"size:500" json:"notes"`
	IsCompleted bool      `gorm:"default:false" json:"is_completed"`
}

func (m *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
