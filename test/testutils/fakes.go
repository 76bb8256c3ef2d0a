// Package testutils provides in-memory fakes and test data factories.
package testutils

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xiuxiu06/leos-kitchen/internal/domain/nutrition"
	"github.com/xiuxiu06/leos-kitchen/internal/domain/recipe"
	"github.com/xiuxiu06/leos-kitchen/internal/domain/user"
	"github.com/xiuxiu06/leos-kitchen/internal/ports/outbound"
)

// FakeUserRepository is an in-memory user store. It assigns autoincrement
// ids and enforces the same uniqueness rules as the real schema.
type FakeUserRepository struct {
	mu     sync.Mutex
	users  map[int64]*user.User
	nextID int64

	FailWith error
}

// NewFakeUserRepository creates an empty in-memory user store
func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{
		users:  make(map[int64]*user.User),
		nextID: 1,
	}
}

// Create inserts a user, rejecting duplicate usernames or emails
func (f *FakeUserRepository) Create(_ context.Context, u *user.User) error {
	if f.FailWith != nil {
		return f.FailWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Username() == u.Username() ||
			strings.EqualFold(existing.Email(), u.Email()) {
			return outbound.ErrDuplicateKey
		}
	}

	u.SetID(f.nextID)
	f.nextID++
	f.users[u.ID()] = u
	return nil
}

// FindByIdentifier dispatches on '@' like the real repository
func (f *FakeUserRepository) FindByIdentifier(_ context.Context, identifier string) (*user.User, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	byEmail := strings.Contains(identifier, "@")
	for _, u := range f.users {
		if byEmail && strings.EqualFold(u.Email(), identifier) {
			return u, nil
		}
		if !byEmail && u.Username() == identifier {
			return u, nil
		}
	}
	return nil, nil
}

// FindByID returns the stored user or nil
func (f *FakeUserRepository) FindByID(_ context.Context, id int64) (*user.User, error) {
	if f.FailWith != nil {
		return nil, f.FailWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

// Update replaces the stored user
func (f *FakeUserRepository) Update(_ context.Context, u *user.User) error {
	if f.FailWith != nil {
		return f.FailWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID()] = u
	return nil
}

// Delete removes a user row directly, simulating an account purge that
// leaves sessions stale
func (f *FakeUserRepository) Delete(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}

// Count returns the number of stored rows
func (f *FakeUserRepository) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

// FakeRecipeRepository is an in-memory recipe store
type FakeRecipeRepository struct {
	mu      sync.Mutex
	recipes map[int64]*recipe.Recipe
	likes   map[int64]map[int64]bool
	saved   map[int64]map[int64]time.Time
	nextID  int64
}

// NewFakeRecipeRepository creates an empty in-memory recipe store
func NewFakeRecipeRepository() *FakeRecipeRepository {
	return &FakeRecipeRepository{
		recipes: make(map[int64]*recipe.Recipe),
		likes:   make(map[int64]map[int64]bool),
		saved:   make(map[int64]map[int64]time.Time),
		nextID:  1,
	}
}

// Create inserts a recipe and assigns its id
func (f *FakeRecipeRepository) Create(_ context.Context, r *recipe.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.SetID(f.nextID)
	f.nextID++
	f.recipes[r.ID()] = r
	return nil
}

// FindByID returns the stored recipe or nil
func (f *FakeRecipeRepository) FindByID(_ context.Context, id int64) (*recipe.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recipes[id], nil
}

// FindFeed filters, sorts and pages like the SQL implementation
func (f *FakeRecipeRepository) FindFeed(_ context.Context, q outbound.FeedQuery) ([]*recipe.Recipe, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matches []*recipe.Recipe
	for _, r := range f.recipes {
		if q.Category != "" && r.Category() != q.Category {
			continue
		}
		if q.Search != "" && !r.MatchesQuery(q.Search) {
			continue
		}
		matches = append(matches, r)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		switch q.SortBy {
		case recipe.SortMostPopular:
			return a.Reviews() > b.Reviews()
		case recipe.SortHighestProtein:
			return a.Macros().Protein > b.Macros().Protein
		case recipe.SortLowestCalories:
			return a.Macros().Calories < b.Macros().Calories
		default:
			return a.PostedAt().After(b.PostedAt())
		}
	})

	total := len(matches)
	if q.Offset > 0 {
		if q.Offset >= total {
			return nil, total, nil
		}
		matches = matches[q.Offset:]
	}
	if q.Limit > 0 && len(matches) > q.Limit {
		matches = matches[:q.Limit]
	}
	return matches, total, nil
}

// FindByAuthor lists one author's recipes, newest first
func (f *FakeRecipeRepository) FindByAuthor(_ context.Context, authorID int64) ([]*recipe.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*recipe.Recipe
	for _, r := range f.recipes {
		if r.AuthorID() == authorID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PostedAt().After(out[j].PostedAt())
	})
	return out, nil
}

// Like records a like once per user
func (f *FakeRecipeRepository) Like(_ context.Context, recipeID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.recipes[recipeID]; !ok {
		return recipe.ErrRecipeNotFound
	}
	if f.likes[recipeID] == nil {
		f.likes[recipeID] = make(map[int64]bool)
	}
	f.likes[recipeID][userID] = true
	return nil
}

// Save adds to the user's collection
func (f *FakeRecipeRepository) Save(_ context.Context, recipeID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.recipes[recipeID]; !ok {
		return recipe.ErrRecipeNotFound
	}
	if f.saved[userID] == nil {
		f.saved[userID] = make(map[int64]time.Time)
	}
	if _, ok := f.saved[userID][recipeID]; ok {
		return recipe.ErrAlreadySaved
	}
	f.saved[userID][recipeID] = time.Now()
	return nil
}

// Unsave removes from the user's collection
func (f *FakeRecipeRepository) Unsave(_ context.Context, recipeID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.saved[userID][recipeID]; !ok {
		return recipe.ErrNotSaved
	}
	delete(f.saved[userID], recipeID)
	return nil
}

// FindSavedByUser lists the user's collection
func (f *FakeRecipeRepository) FindSavedByUser(_ context.Context, userID int64) ([]*recipe.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*recipe.Recipe
	for id := range f.saved[userID] {
		if r, ok := f.recipes[id]; ok {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// FakeNutritionRepository is an in-memory nutrition log
type FakeNutritionRepository struct {
	mu      sync.Mutex
	entries []nutrition.Entry
	nextID  int64
}

// NewFakeNutritionRepository creates an empty in-memory nutrition log
func NewFakeNutritionRepository() *FakeNutritionRepository {
	return &FakeNutritionRepository{nextID: 1}
}

// Add stores an entry with an assigned id
func (f *FakeNutritionRepository) Add(_ context.Context, e nutrition.Entry) (nutrition.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.nextID
	f.nextID++
	f.entries = append(f.entries, e)
	return e, nil
}

// FindRecentByUser returns the user's latest entries, oldest-first
func (f *FakeNutritionRepository) FindRecentByUser(_ context.Context, userID int64, limit int) ([]nutrition.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matches []nutrition.Entry
	for _, e := range f.entries {
		if e.UserID == userID {
			matches = append(matches, e)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Date.Equal(matches[j].Date) {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].Date.Before(matches[j].Date)
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[len(matches)-limit:]
	}
	return matches, nil
}

// FakeCache is an in-memory cache that ignores TTLs
type FakeCache struct {
	mu    sync.Mutex
	data  map[string][]byte
	Fail  bool
	Reads int
}

// NewFakeCache creates an empty in-memory cache
func NewFakeCache() *FakeCache {
	return &FakeCache{data: make(map[string][]byte)}
}

// Get returns the cached value or nil
func (f *FakeCache) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return nil, context.DeadlineExceeded
	}
	f.Reads++
	return f.data[key], nil
}

// Set stores the value
func (f *FakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return context.DeadlineExceeded
	}
	f.data[key] = value
	return nil
}

// Delete removes the key
func (f *FakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

// FakeChatCompletion replays a scripted reply as deltas
type FakeChatCompletion struct {
	Reply    string
	Err      error
	LastSent []outbound.ChatMessage
}

// StreamChat forwards the scripted reply one word at a time
func (f *FakeChatCompletion) StreamChat(_ context.Context, messages []outbound.ChatMessage, onDelta func(string) error) (string, error) {
	f.LastSent = messages
	if f.Err != nil {
		return "", f.Err
	}
	for _, word := range strings.SplitAfter(f.Reply, " ") {
		if err := onDelta(word); err != nil {
			return "", err
		}
	}
	return f.Reply, nil
}
