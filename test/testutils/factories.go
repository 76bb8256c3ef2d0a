package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/xiuxiu06/leos-kitchen/internal/domain/recipe"
	"github.com/xiuxiu06/leos-kitchen/internal/domain/user"
)

// UserFactory generates test users with a seeded faker
type UserFactory struct {
	faker *gofakeit.Faker
	seq   int
}

// NewUserFactory creates a user factory with a fixed seed for repeatability
func NewUserFactory(seed int64) *UserFactory {
	return &UserFactory{faker: gofakeit.New(seed)}
}

// Build returns a valid new user with faked attributes
func (f *UserFactory) Build() *user.User {
	f.seq++
	username := fmt.Sprintf("%s%d", f.faker.Username(), f.seq)
	email := fmt.Sprintf("%s@%s", username, f.faker.DomainName())
	u, err := user.NewUser(username, email, f.faker.Password(true, true, true, false, false, 64), f.faker.Name())
	if err != nil {
		panic("factory produced invalid user: " + err.Error())
	}
	return u
}

// RecipeFactory generates test recipes with a seeded faker
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a recipe factory with a fixed seed
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{faker: gofakeit.New(seed)}
}

// Build returns a valid recipe for the given author
func (f *RecipeFactory) Build(authorID int64, category recipe.Category) *recipe.Recipe {
	macros := recipe.Macros{
		Protein: f.faker.Number(15, 40),
		Carbs:   f.faker.Number(20, 60),
		Fat:     f.faker.Number(5, 25),
	}
	r, err := recipe.NewRecipe(
		f.faker.Dinner(),
		f.faker.Sentence(8),
		authorID,
		category,
		macros,
	)
	if err != nil {
		panic("factory produced invalid recipe: " + err.Error())
	}
	r.SetTags([]string{f.faker.Word(), f.faker.Word()})
	r.SetIngredients([]string{f.faker.Fruit(), f.faker.Vegetable()})
	return r
}

// BuildAt returns a recipe with a fixed posting time, useful for sort tests
func (f *RecipeFactory) BuildAt(authorID int64, category recipe.Category, postedAt time.Time) *recipe.Recipe {
	r := f.Build(authorID, category)
	return recipe.Reconstitute(recipe.ReconstituteParams{
		Name:        r.Name(),
		Description: r.Description(),
		AuthorID:    r.AuthorID(),
		Category:    r.Category(),
		Tags:        r.Tags(),
		Ingredients: r.Ingredients(),
		Macros:      r.Macros(),
		PostedAt:    postedAt,
	})
}
