// Package gorm provides GORM model definitions and repository
// implementations backed by the relational store.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"type:varchar(80);uniqueIndex;not null"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	FullName     string `gorm:"type:varchar(255)"`
	Bio          string `gorm:"type:text"`
	ProfilePic   string `gorm:"type:text"`
	DateJoined   string `gorm:"type:varchar(10);not null"`
	IsPremium    bool   `gorm:"default:false"`

	Recipes []RecipeModel `gorm:"foreignKey:AuthorID"`
}

// TableName specifies the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// RecipeModel represents the GORM model for shared meals
type RecipeModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(200);not null;index"`
	Description string `gorm:"type:text"`
	AuthorID    int64  `gorm:"not null;index"`

	Category     string      `gorm:"type:varchar(50);index"`
	Tags         StringSlice `gorm:"type:json"`
	Ingredients  StringSlice `gorm:"type:json"`
	Instructions StringSlice `gorm:"type:json"`
	RecipeURL    string      `gorm:"type:text"`
	ImageURL     string      `gorm:"type:text"`

	Protein      int `gorm:"default:0"`
	Carbs        int `gorm:"default:0"`
	Fat          int `gorm:"default:0"`
	Calories     int `gorm:"default:0;index"`
	Fiber        int `gorm:"default:0"`
	Sugar        int `gorm:"default:0"`
	Sodium       int `gorm:"default:0"`
	Cholesterol  int `gorm:"default:0"`
	SaturatedFat int `gorm:"default:0"`
	TransFat     int `gorm:"default:0"`

	Rating  float64 `gorm:"default:0"`
	Reviews int     `gorm:"default:0;index"`
	Likes   int     `gorm:"column:likes_count;default:0"`
	Saves   int     `gorm:"column:saves_count;default:0"`

	PostedAt time.Time `gorm:"index"`

	Author UserModel `gorm:"foreignKey:AuthorID"`
}

// TableName specifies the table name for RecipeModel
func (RecipeModel) TableName() string {
	return "recipes"
}

// RecipeLikeModel records one user's like of one recipe
type RecipeLikeModel struct {
	RecipeID  int64 `gorm:"primaryKey"`
	UserID    int64 `gorm:"primaryKey"`
	CreatedAt time.Time
}

// TableName specifies the table name for RecipeLikeModel
func (RecipeLikeModel) TableName() string {
	return "recipe_likes"
}

// SavedRecipeModel records one entry of a user's saved collection
type SavedRecipeModel struct {
	RecipeID  int64 `gorm:"primaryKey"`
	UserID    int64 `gorm:"primaryKey;index"`
	CreatedAt time.Time
}

// TableName specifies the table name for SavedRecipeModel
func (SavedRecipeModel) TableName() string {
	return "saved_recipes"
}

// NutritionEntryModel represents one logged day of macros
type NutritionEntryModel struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	UserID   int64     `gorm:"not null;index"`
	Date     time.Time `gorm:"not null;index"`
	Protein  int       `gorm:"default:0"`
	Carbs    int       `gorm:"default:0"`
	Fat      int       `gorm:"default:0"`
	Calories int       `gorm:"default:0"`
}

// TableName specifies the table name for NutritionEntryModel
func (NutritionEntryModel) TableName() string {
	return "nutrition_entries"
}

// StringSlice is a custom type for storing string slices as JSON
type StringSlice []string

// Scan implements the Scanner interface for database deserialization
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}

	if len(bytes) == 0 {
		*s = nil
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// Value implements the Valuer interface for database serialization
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// AllModels returns every model registered for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&RecipeModel{},
		&RecipeLikeModel{},
		&SavedRecipeModel{},
		&NutritionEntryModel{},
	}
}
