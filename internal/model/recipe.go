package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// JSONBStringArray stores a string slice as JSONB.
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

type Recipe struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`
	Title           string             `gorm:"size:255;not null" json:"title"`
	Description     string             `gorm:"type:text" json:"description"`
	Instructions    string             `gorm:"type:text" json:"instructions"`
	PrepTimeMinutes *int               `json:"prep_time_minutes"`
	CookTimeMinutes *int               `json:"cook_time_minutes"`
	Servings        int                `gorm:"default:4" json:"servings"`
	Difficulty      string             `gorm:"size:20;default:'medium'" json:"difficulty"`
	DietaryTags     JSONBStringArray   `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_tags"`
	SourceURL       string             `gorm:"size:2048" json:"source_url"`
	Embedding       pgvector.Vector    `gorm:"type:vector(3)" json:"-"`
	UserID          uuid.UUID          `gorm:"type:uuid" json:"user_id"`
	Ingredients     []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
	Images          []RecipeImage      `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Tags            []Tag              `gorm:"many2many:recipe_tags" json:"tags,omitempty"`
	Favorite        *Favorite          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Notes           []RecipeNote       `gorm:"constraint:OnDelete:CASCADE" json:"notes,omitempty"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient joins a recipe to an ingredient with a free-text
// quantity. The quantity stays opaque text so scaling can rewrite numeric
// tokens while preserving phrasing like "1 1/2 cups, sifted".
type RecipeIngredient struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipe_id"`
	IngredientID uuid.UUID  `gorm:"type:uuid;not null" json:"ingredient_id"`
	Ingredient   Ingredient `json:"ingredient,omitempty"`
	Quantity     *string    `gorm:"size:50" json:"quantity"`
	Unit         string     `gorm:"size:50" json:"unit"`
	Notes        string     `gorm:"size:255" json:"notes"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

type RecipeImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	URL       string    `gorm:"size:2048;not null" json:"url"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
}

func (ri *RecipeImage) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
