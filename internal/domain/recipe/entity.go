// Package recipe contains the core domain logic for community-shared meals.
package recipe

import (
	"strings"
	"time"
)

// Recipe represents a meal shared to the community feed.
type Recipe struct {
	id             int64
	name           string
	description    string
	authorID       int64
	authorUsername string

	category     Category
	tags         []string
	ingredients  []string
	instructions []string
	recipeURL    string
	imageURL     string

	macros Macros

	rating  float64
	reviews int
	likes   int
	saves   int

	postedAt time.Time
}

// NewRecipe creates a new recipe with validation. When calories are omitted
// they default to the value derived from the macronutrients, mirroring how
// the share-a-meal form pre-fills the field.
func NewRecipe(name, description string, authorID int64, category Category, macros Macros) (*Recipe, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(name) > 200 {
		return nil, ErrNameTooLong
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if authorID == 0 {
		return nil, ErrNoAuthor
	}
	if err := macros.Validate(); err != nil {
		return nil, err
	}
	if macros.Calories == 0 {
		macros.Calories = macros.DerivedCalories()
	}

	return &Recipe{
		name:        name,
		description: description,
		authorID:    authorID,
		category:    category,
		macros:      macros,
		postedAt:    time.Now(),
	}, nil
}

// ID returns the store-assigned identifier
func (r *Recipe) ID() int64 { return r.id }

// SetID records the store-assigned identifier after the first insert
func (r *Recipe) SetID(id int64) { r.id = id }

// Name returns the meal name
func (r *Recipe) Name() string { return r.name }

// Description returns the meal description
func (r *Recipe) Description() string { return r.description }

// AuthorID returns the id of the user who shared the meal
func (r *Recipe) AuthorID() int64 { return r.authorID }

// AuthorUsername returns the display handle of the author, when loaded
func (r *Recipe) AuthorUsername() string { return r.authorUsername }

// Category returns the meal category
func (r *Recipe) Category() Category { return r.category }

// Tags returns the free-form tags
func (r *Recipe) Tags() []string { return r.tags }

// Ingredients returns the ingredient lines
func (r *Recipe) Ingredients() []string { return r.ingredients }

// Instructions returns the preparation steps
func (r *Recipe) Instructions() []string { return r.instructions }

// RecipeURL returns the optional link to a full external recipe
func (r *Recipe) RecipeURL() string { return r.recipeURL }

// ImageURL returns the optional meal image
func (r *Recipe) ImageURL() string { return r.imageURL }

// Macros returns the per-serving nutrition facts
func (r *Recipe) Macros() Macros { return r.macros }

// Rating returns the average rating
func (r *Recipe) Rating() float64 { return r.rating }

// Reviews returns the number of ratings received
func (r *Recipe) Reviews() int { return r.reviews }

// Likes returns the like count
func (r *Recipe) Likes() int { return r.likes }

// Saves returns how many users saved the meal to their collection
func (r *Recipe) Saves() int { return r.saves }

// PostedAt returns when the meal was shared
func (r *Recipe) PostedAt() time.Time { return r.postedAt }

// SetTags replaces the tag list
func (r *Recipe) SetTags(tags []string) { r.tags = tags }

// SetIngredients replaces the ingredient lines
func (r *Recipe) SetIngredients(lines []string) { r.ingredients = lines }

// SetInstructions replaces the preparation steps
func (r *Recipe) SetInstructions(steps []string) { r.instructions = steps }

// SetLinks sets the optional external recipe and image URLs
func (r *Recipe) SetLinks(recipeURL, imageURL string) {
	r.recipeURL = recipeURL
	r.imageURL = imageURL
}

// MatchesQuery reports whether the meal matches a case-insensitive search
// over its name, tags and ingredient lines.
func (r *Recipe) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(r.name), q) {
		return true
	}
	for _, t := range r.tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	for _, i := range r.ingredients {
		if strings.Contains(strings.ToLower(i), q) {
			return true
		}
	}
	return false
}

// ReconstituteParams carries every stored attribute of a recipe row.
type ReconstituteParams struct {
	ID             int64
	Name           string
	Description    string
	AuthorID       int64
	AuthorUsername string
	Category       Category
	Tags           []string
	Ingredients    []string
	Instructions   []string
	RecipeURL      string
	ImageURL       string
	Macros         Macros
	Rating         float64
	Reviews        int
	Likes          int
	Saves          int
	PostedAt       time.Time
}

// Reconstitute rebuilds a recipe from stored attributes without validation.
func Reconstitute(p ReconstituteParams) *Recipe {
	return &Recipe{
		id:             p.ID,
		name:           p.Name,
		description:    p.Description,
		authorID:       p.AuthorID,
		authorUsername: p.AuthorUsername,
		category:       p.Category,
		tags:           p.Tags,
		ingredients:    p.Ingredients,
		instructions:   p.Instructions,
		recipeURL:      p.RecipeURL,
		imageURL:       p.ImageURL,
		macros:         p.Macros,
		rating:         p.Rating,
		reviews:        p.Reviews,
		likes:          p.Likes,
		saves:          p.Saves,
		postedAt:       p.PostedAt,
	}
}
