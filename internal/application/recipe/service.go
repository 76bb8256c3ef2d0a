// Package recipe provides the application layer for the community feed.
package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xiuxiu06/leos-kitchen/internal/application/auth"
	"github.com/xiuxiu06/leos-kitchen/internal/domain/recipe"
	"github.com/xiuxiu06/leos-kitchen/internal/ports/outbound"
	"github.com/xiuxiu06/leos-kitchen/pkg/errors"
	"go.uber.org/zap"
)

const feedCacheTTL = time.Minute

// Service implements the feed, detail, share and collection use cases.
type Service struct {
	recipeRepo outbound.RecipeRepository
	cache      outbound.CacheRepository
	logger     *zap.Logger
}

// NewService creates a new recipe service. cache may be nil, in which case
// every feed read goes to the store.
func NewService(
	recipeRepo outbound.RecipeRepository,
	cache outbound.CacheRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		recipeRepo: recipeRepo,
		cache:      cache,
		logger:     logger.Named("recipe-service"),
	}
}

// ShareCommand contains the share-a-meal form fields.
type ShareCommand struct {
	Name         string   `json:"name" validate:"required,max=200"`
	Description  string   `json:"description"`
	Category     string   `json:"category" validate:"required"`
	Tags         []string `json:"tags"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	RecipeURL    string   `json:"recipe_url" validate:"omitempty,url"`
	ImageURL     string   `json:"image_url" validate:"omitempty,url"`
	Protein      int      `json:"protein" validate:"min=0"`
	Carbs        int      `json:"carbs" validate:"min=0"`
	Fat          int      `json:"fat" validate:"min=0"`
	Calories     int      `json:"calories" validate:"min=0"`
	Fiber        int      `json:"fiber"`
	Sugar        int      `json:"sugar"`
	Sodium       int      `json:"sodium"`
	Cholesterol  int      `json:"cholesterol"`
	SaturatedFat int      `json:"saturated_fat"`
	TransFat     int      `json:"trans_fat"`
}

// RecipeDTO is the feed/detail shape of a meal.
type RecipeDTO struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Author       string    `json:"author"`
	AuthorID     int64     `json:"author_id"`
	Category     string    `json:"category"`
	Tags         []string  `json:"tags,omitempty"`
	Ingredients  []string  `json:"ingredients,omitempty"`
	Instructions []string  `json:"instructions,omitempty"`
	RecipeURL    string    `json:"recipe_url,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	Protein      int       `json:"protein"`
	Carbs        int       `json:"carbs"`
	Fat          int       `json:"fat"`
	Calories     int       `json:"calories"`
	Rating       float64   `json:"rating"`
	Reviews      int       `json:"reviews"`
	Likes        int       `json:"likes"`
	Saves        int       `json:"saves"`
	PostedAt     time.Time `json:"posted_at"`
}

// FeedPage is one page of feed results.
type FeedPage struct {
	Recipes []RecipeDTO `json:"recipes"`
	Total   int         `json:"total"`
}

// Share posts a new meal to the feed on behalf of the session's user.
func (s *Service) Share(ctx context.Context, sess auth.Session, cmd ShareCommand) (*RecipeDTO, error) {
	if !sess.Authenticated {
		return nil, errors.NewUnauthorizedError("Please log in to share a meal")
	}

	macros := recipe.Macros{
		Protein:      cmd.Protein,
		Carbs:        cmd.Carbs,
		Fat:          cmd.Fat,
		Calories:     cmd.Calories,
		Fiber:        cmd.Fiber,
		Sugar:        cmd.Sugar,
		Sodium:       cmd.Sodium,
		Cholesterol:  cmd.Cholesterol,
		SaturatedFat: cmd.SaturatedFat,
		TransFat:     cmd.TransFat,
	}

	entity, err := recipe.NewRecipe(cmd.Name, cmd.Description, sess.UserID, recipe.Category(cmd.Category), macros)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	entity.SetTags(cmd.Tags)
	entity.SetIngredients(cmd.Ingredients)
	entity.SetInstructions(cmd.Instructions)
	entity.SetLinks(cmd.RecipeURL, cmd.ImageURL)

	if err := s.recipeRepo.Create(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}

	s.invalidateFeedCache(ctx)

	s.logger.Info("Meal shared",
		zap.Int64("recipe_id", entity.ID()),
		zap.Int64("author_id", sess.UserID),
		zap.String("name", entity.Name()),
	)

	dto := entityToDTO(entity)
	dto.Author = sess.Username
	return &dto, nil
}

// Get returns the full detail of one meal.
func (s *Service) Get(ctx context.Context, id int64) (*RecipeDTO, error) {
	entity, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	if entity == nil {
		return nil, errors.NewRecipeNotFoundError(id)
	}
	dto := entityToDTO(entity)
	return &dto, nil
}

// Feed returns one page of the community feed, cache-aside. A cache
// failure degrades to a store read, never to a request failure.
func (s *Service) Feed(ctx context.Context, q outbound.FeedQuery) (*FeedPage, error) {
	if q.SortBy == "" {
		q.SortBy = recipe.SortNewest
	}
	if !q.SortBy.IsValid() {
		return nil, errors.NewValidationError(recipe.ErrInvalidSort.Error())
	}
	if q.Category != "" && !q.Category.IsValid() {
		return nil, errors.NewValidationError(recipe.ErrInvalidCategory.Error())
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 24
	}

	key := feedCacheKey(q)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
			var page FeedPage
			if json.Unmarshal(data, &page) == nil {
				return &page, nil
			}
		}
	}

	entities, total, err := s.recipeRepo.FindFeed(ctx, q)
	if err != nil {
		return nil, errors.NewDatabaseError("query feed", err)
	}

	page := &FeedPage{Recipes: entitiesToDTOs(entities), Total: total}

	if s.cache != nil {
		if data, err := json.Marshal(page); err == nil {
			if err := s.cache.Set(ctx, key, data, feedCacheTTL); err != nil {
				s.logger.Debug("Feed cache write failed", zap.Error(err))
			}
		}
	}
	return page, nil
}

// Mine lists the meals shared by the session's user.
func (s *Service) Mine(ctx context.Context, sess auth.Session) ([]RecipeDTO, error) {
	if !sess.Authenticated {
		return nil, errors.NewUnauthorizedError("")
	}
	entities, err := s.recipeRepo.FindByAuthor(ctx, sess.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes by author", err)
	}
	return entitiesToDTOs(entities), nil
}

// Like records a like for the session's user.
func (s *Service) Like(ctx context.Context, sess auth.Session, recipeID int64) error {
	if !sess.Authenticated {
		return errors.NewUnauthorizedError("Please log in to like recipes")
	}
	if err := s.recipeRepo.Like(ctx, recipeID, sess.UserID); err != nil {
		if err == recipe.ErrRecipeNotFound {
			return errors.NewRecipeNotFoundError(recipeID)
		}
		return errors.NewDatabaseError("like recipe", err)
	}
	s.invalidateFeedCache(ctx)
	return nil
}

// SaveToCollection adds a meal to the user's saved collection.
func (s *Service) SaveToCollection(ctx context.Context, sess auth.Session, recipeID int64) error {
	if !sess.Authenticated {
		return errors.NewUnauthorizedError("Please log in to save recipes")
	}
	if err := s.recipeRepo.Save(ctx, recipeID, sess.UserID); err != nil {
		switch err {
		case recipe.ErrRecipeNotFound:
			return errors.NewRecipeNotFoundError(recipeID)
		case recipe.ErrAlreadySaved:
			return nil
		}
		return errors.NewDatabaseError("save recipe", err)
	}
	return nil
}

// RemoveFromCollection removes a meal from the user's saved collection.
func (s *Service) RemoveFromCollection(ctx context.Context, sess auth.Session, recipeID int64) error {
	if !sess.Authenticated {
		return errors.NewUnauthorizedError("")
	}
	if err := s.recipeRepo.Unsave(ctx, recipeID, sess.UserID); err != nil {
		if err == recipe.ErrNotSaved {
			return nil
		}
		return errors.NewDatabaseError("unsave recipe", err)
	}
	return nil
}

// Saved lists the user's saved collection.
func (s *Service) Saved(ctx context.Context, sess auth.Session) ([]RecipeDTO, error) {
	if !sess.Authenticated {
		return nil, errors.NewUnauthorizedError("")
	}
	entities, err := s.recipeRepo.FindSavedByUser(ctx, sess.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError("list saved recipes", err)
	}
	return entitiesToDTOs(entities), nil
}

// Featured returns the top-rated meals for the home banner.
func (s *Service) Featured(ctx context.Context, limit int) ([]RecipeDTO, error) {
	if limit <= 0 {
		limit = 3
	}
	page, err := s.Feed(ctx, outbound.FeedQuery{
		SortBy: recipe.SortMostPopular,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	return page.Recipes, nil
}

func (s *Service) invalidateFeedCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	// The feed key space is bounded by sort x category; clearing the
	// default page is enough to keep the banner fresh, remaining pages
	// expire within the TTL.
	key := feedCacheKey(outbound.FeedQuery{SortBy: recipe.SortNewest, Limit: 24})
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Debug("Feed cache invalidation failed", zap.Error(err))
	}
}

func feedCacheKey(q outbound.FeedQuery) string {
	return fmt.Sprintf("feed:%s:%s:%s:%d:%d", q.SortBy, q.Category, q.Search, q.Offset, q.Limit)
}

func entityToDTO(e *recipe.Recipe) RecipeDTO {
	m := e.Macros()
	return RecipeDTO{
		ID:           e.ID(),
		Name:         e.Name(),
		Description:  e.Description(),
		Author:       e.AuthorUsername(),
		AuthorID:     e.AuthorID(),
		Category:     string(e.Category()),
		Tags:         e.Tags(),
		Ingredients:  e.Ingredients(),
		Instructions: e.Instructions(),
		RecipeURL:    e.RecipeURL(),
		ImageURL:     e.ImageURL(),
		Protein:      m.Protein,
		Carbs:        m.Carbs,
		Fat:          m.Fat,
		Calories:     m.Calories,
		Rating:       e.Rating(),
		Reviews:      e.Reviews(),
		Likes:        e.Likes(),
		Saves:        e.Saves(),
		PostedAt:     e.PostedAt(),
	}
}

func entitiesToDTOs(entities []*recipe.Recipe) []RecipeDTO {
	dtos := make([]RecipeDTO, 0, len(entities))
	for _, e := range entities {
		dtos = append(dtos, entityToDTO(e))
	}
	return dtos
}
