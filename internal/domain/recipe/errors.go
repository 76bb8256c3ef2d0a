package recipe

import "errors"

// Domain errors for meal operations

var (
	ErrNameRequired    = errors.New("meal name is required")
	ErrNameTooLong     = errors.New("meal name must not exceed 200 characters")
	ErrInvalidCategory = errors.New("unknown meal category")
	ErrNegativeMacros  = errors.New("nutrition values cannot be negative")
	ErrNoAuthor        = errors.New("meal must have an author")

	ErrRecipeNotFound = errors.New("recipe not found")
	ErrAlreadySaved   = errors.New("recipe already saved")
	ErrNotSaved       = errors.New("recipe is not in saved collection")
	ErrInvalidSort    = errors.New("unknown sort option")
)
