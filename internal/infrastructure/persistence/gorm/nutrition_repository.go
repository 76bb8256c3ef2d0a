package gorm

import (
	"context"

	"github.com/xiuxiu06/leos-kitchen/internal/domain/nutrition"
	"gorm.io/gorm"
)

// NutritionRepository implements outbound.NutritionRepository using GORM
type NutritionRepository struct {
	db *gorm.DB
}

// NewNutritionRepository creates a new GORM nutrition repository
func NewNutritionRepository(db *gorm.DB) *NutritionRepository {
	return &NutritionRepository{db: db}
}

// Add inserts a daily entry and returns it with its assigned id
func (r *NutritionRepository) Add(ctx context.Context, e nutrition.Entry) (nutrition.Entry, error) {
	model := entryToModel(e)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nutrition.Entry{}, err
	}
	return entryToEntity(model), nil
}

// FindRecentByUser returns the user's latest entries, oldest-first
func (r *NutritionRepository) FindRecentByUser(ctx context.Context, userID int64, limit int) ([]nutrition.Entry, error) {
	var models []NutritionEntryModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	// Reverse into chronological order for the summary math
	entries := make([]nutrition.Entry, len(models))
	for i := range models {
		entries[len(models)-1-i] = entryToEntity(&models[i])
	}
	return entries, nil
}
