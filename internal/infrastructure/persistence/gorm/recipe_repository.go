package gorm

import (
	"context"
	"errors"

	domainrecipe "github.com/xiuxiu06/leos-kitchen/internal/domain/recipe"
	"github.com/xiuxiu06/leos-kitchen/internal/ports/outbound"
	"gorm.io/gorm"
)

// RecipeRepository implements outbound.RecipeRepository using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new GORM recipe repository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create inserts a new recipe and assigns its id
func (r *RecipeRepository) Create(ctx context.Context, entity *domainrecipe.Recipe) error {
	model := recipeToModel(entity)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	entity.SetID(model.ID)
	return nil
}

// FindByID retrieves a recipe with its author, nil when no row exists
func (r *RecipeRepository) FindByID(ctx context.Context, id int64) (*domainrecipe.Recipe, error) {
	var model RecipeModel
	err := r.db.WithContext(ctx).Preload("Author").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return recipeToEntity(&model), nil
}

// FindFeed returns one page of the feed plus the total match count
func (r *RecipeRepository) FindFeed(ctx context.Context, q outbound.FeedQuery) ([]*domainrecipe.Recipe, int, error) {
	query := r.db.WithContext(ctx).Model(&RecipeModel{})

	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where("name LIKE ? OR tags LIKE ? OR ingredients LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(q.SortBy))
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var models []RecipeModel
	if err := query.Preload("Author").Find(&models).Error; err != nil {
		return nil, 0, err
	}
	return modelsToEntities(models), int(total), nil
}

// FindByAuthor lists one user's shared meals, newest first
func (r *RecipeRepository) FindByAuthor(ctx context.Context, authorID int64) ([]*domainrecipe.Recipe, error) {
	var models []RecipeModel
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("posted_at DESC").
		Preload("Author").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return modelsToEntities(models), nil
}

// Like records a like and bumps the counter. Liking twice is a no-op.
func (r *RecipeRepository) Like(ctx context.Context, recipeID, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&RecipeModel{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainrecipe.ErrRecipeNotFound
		}

		var existing int64
		if err := tx.Model(&RecipeLikeModel{}).
			Where("recipe_id = ? AND user_id = ?", recipeID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		if err := tx.Create(&RecipeLikeModel{RecipeID: recipeID, UserID: userID}).Error; err != nil {
			return err
		}
		return tx.Model(&RecipeModel{}).
			Where("id = ?", recipeID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
	})
}

// Save adds a recipe to the user's collection
func (r *RecipeRepository) Save(ctx context.Context, recipeID, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&RecipeModel{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainrecipe.ErrRecipeNotFound
		}

		var existing int64
		if err := tx.Model(&SavedRecipeModel{}).
			Where("recipe_id = ? AND user_id = ?", recipeID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return domainrecipe.ErrAlreadySaved
		}

		if err := tx.Create(&SavedRecipeModel{RecipeID: recipeID, UserID: userID}).Error; err != nil {
			return err
		}
		return tx.Model(&RecipeModel{}).
			Where("id = ?", recipeID).
			UpdateColumn("saves_count", gorm.Expr("saves_count + 1")).Error
	})
}

// Unsave removes a recipe from the user's collection
func (r *RecipeRepository) Unsave(ctx context.Context, recipeID, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("recipe_id = ? AND user_id = ?", recipeID, userID).
			Delete(&SavedRecipeModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainrecipe.ErrNotSaved
		}
		return tx.Model(&RecipeModel{}).
			Where("id = ? AND saves_count > 0", recipeID).
			UpdateColumn("saves_count", gorm.Expr("saves_count - 1")).Error
	})
}

// FindSavedByUser lists the user's saved collection, most recently saved first
func (r *RecipeRepository) FindSavedByUser(ctx context.Context, userID int64) ([]*domainrecipe.Recipe, error) {
	var models []RecipeModel
	err := r.db.WithContext(ctx).
		Joins("JOIN saved_recipes ON saved_recipes.recipe_id = recipes.id").
		Where("saved_recipes.user_id = ?", userID).
		Order("saved_recipes.created_at DESC").
		Preload("Author").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return modelsToEntities(models), nil
}

func orderClause(sort domainrecipe.SortOption) string {
	switch sort {
	case domainrecipe.SortMostPopular:
		return "reviews DESC, posted_at DESC"
	case domainrecipe.SortHighestProtein:
		return "protein DESC, posted_at DESC"
	case domainrecipe.SortLowestCalories:
		return "calories ASC, posted_at DESC"
	default:
		return "posted_at DESC"
	}
}

func modelsToEntities(models []RecipeModel) []*domainrecipe.Recipe {
	entities := make([]*domainrecipe.Recipe, 0, len(models))
	for i := range models {
		entities = append(entities, recipeToEntity(&models[i]))
	}
	return entities
}
