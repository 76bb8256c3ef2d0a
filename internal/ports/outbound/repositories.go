// Package outbound defines the interfaces for outbound ports (secondary/driven adapters).
// These are the interfaces the application uses to interact with external systems.
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/xiuxiu06/leos-kitchen/internal/domain/nutrition"
	"github.com/xiuxiu06/leos-kitchen/internal/domain/recipe"
	"github.com/xiuxiu06/leos-kitchen/internal/domain/user"
)

// ErrDuplicateKey is returned by Create when a unique constraint on
// username or email rejects the write. The store's own constraint is the
// authority: two concurrent registrations of the same handle yield exactly
// one success and one ErrDuplicateKey.
var ErrDuplicateKey = errors.New("username or email already exists")

// UserRepository defines the interface for user persistence.
//
// Lookups report absence with a nil entity and nil error; errors are
// reserved for store failures.
type UserRepository interface {
	// Create inserts a new user and assigns its id. All writes are durable
	// before the call returns.
	Create(ctx context.Context, u *user.User) error

	// FindByIdentifier looks up by email when identifier contains '@',
	// otherwise by username.
	FindByIdentifier(ctx context.Context, identifier string) (*user.User, error)

	FindByID(ctx context.Context, id int64) (*user.User, error)
	Update(ctx context.Context, u *user.User) error
}

// FeedQuery carries search, filter and ordering parameters for the feed.
type FeedQuery struct {
	Search   string
	Category recipe.Category // empty means all categories
	SortBy   recipe.SortOption
	Offset   int
	Limit    int
}

// RecipeRepository defines the interface for meal persistence.
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	FindByID(ctx context.Context, id int64) (*recipe.Recipe, error)
	FindFeed(ctx context.Context, q FeedQuery) ([]*recipe.Recipe, int, error)
	FindByAuthor(ctx context.Context, authorID int64) ([]*recipe.Recipe, error)

	// Like records a like; liking twice is a no-op.
	Like(ctx context.Context, recipeID, userID int64) error

	// Save / Unsave manage a user's saved-recipes collection.
	Save(ctx context.Context, recipeID, userID int64) error
	Unsave(ctx context.Context, recipeID, userID int64) error
	FindSavedByUser(ctx context.Context, userID int64) ([]*recipe.Recipe, error)
}

// NutritionRepository defines the interface for daily macro entries.
type NutritionRepository interface {
	Add(ctx context.Context, e nutrition.Entry) (nutrition.Entry, error)
	// FindRecentByUser returns up to limit entries, oldest-first.
	FindRecentByUser(ctx context.Context, userID int64, limit int) ([]nutrition.Entry, error)
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// PasswordHasher is the one-way transform applied to passwords before they
// reach the store. Implementations must be deterministic so a login attempt
// can be compared against the stored digest.
type PasswordHasher interface {
	Hash(plaintext string) string
}

// ChatMessage is one role-tagged message of a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionService streams a completion for a running conversation.
// onDelta is invoked for each text fragment as it arrives; the full
// response text is returned once the stream ends. A failure mid-stream is
// surfaced as-is, no retry.
type ChatCompletionService interface {
	StreamChat(ctx context.Context, messages []ChatMessage, onDelta func(string) error) (string, error)
}
