package recipe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RecipeTestSuite provides a test suite for the Recipe entity
type RecipeTestSuite struct {
	suite.Suite
}

func (suite *RecipeTestSuite) TestRecipeCreation() {
	suite.Run("ValidRecipe_ShouldCreateSuccessfully", func() {
		// Arrange
		macros := Macros{Protein: 30, Carbs: 40, Fat: 10}

		// Act
		r, err := NewRecipe("Chicken Stir Fry", "Weeknight staple", 1, CategoryDinner, macros)

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), r)

		assert.Equal(suite.T(), "Chicken Stir Fry", r.Name())
		assert.Equal(suite.T(), CategoryDinner, r.Category())
		assert.NotZero(suite.T(), r.PostedAt())
	})

	suite.Run("OmittedCalories_ShouldDeriveFromMacros", func() {
		r, err := NewRecipe("Protein Oatmeal", "", 1, CategoryBreakfast, Macros{Protein: 30, Carbs: 40, Fat: 10})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 30*4+40*4+10*9, r.Macros().Calories)
	})

	suite.Run("ExplicitCalories_ShouldBeKept", func() {
		r, err := NewRecipe("Protein Oatmeal", "", 1, CategoryBreakfast, Macros{Protein: 30, Carbs: 40, Fat: 10, Calories: 500})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 500, r.Macros().Calories)
	})

	suite.Run("EmptyName_ShouldReturnError", func() {
		r, err := NewRecipe("", "", 1, CategoryDinner, Macros{})

		assert.ErrorIs(suite.T(), err, ErrNameRequired)
		assert.Nil(suite.T(), r)
	})

	suite.Run("OverlongName_ShouldReturnError", func() {
		r, err := NewRecipe(strings.Repeat("x", 201), "", 1, CategoryDinner, Macros{})

		assert.ErrorIs(suite.T(), err, ErrNameTooLong)
		assert.Nil(suite.T(), r)
	})

	suite.Run("UnknownCategory_ShouldReturnError", func() {
		r, err := NewRecipe("Chicken Stir Fry", "", 1, Category("brunch"), Macros{})

		assert.ErrorIs(suite.T(), err, ErrInvalidCategory)
		assert.Nil(suite.T(), r)
	})

	suite.Run("NegativeMacros_ShouldReturnError", func() {
		r, err := NewRecipe("Chicken Stir Fry", "", 1, CategoryDinner, Macros{Protein: -1})

		assert.ErrorIs(suite.T(), err, ErrNegativeMacros)
		assert.Nil(suite.T(), r)
	})

	suite.Run("MissingAuthor_ShouldReturnError", func() {
		r, err := NewRecipe("Chicken Stir Fry", "", 0, CategoryDinner, Macros{})

		assert.ErrorIs(suite.T(), err, ErrNoAuthor)
		assert.Nil(suite.T(), r)
	})
}

func (suite *RecipeTestSuite) TestMatchesQuery() {
	r, err := NewRecipe("Chicken Stir Fry", "", 1, CategoryDinner, Macros{Protein: 30})
	require.NoError(suite.T(), err)
	r.SetTags([]string{"high-protein", "one-pan"})
	r.SetIngredients([]string{"chicken breast", "broccoli"})

	suite.Run("NameSubstring_ShouldMatchCaseInsensitive", func() {
		assert.True(suite.T(), r.MatchesQuery("stir"))
		assert.True(suite.T(), r.MatchesQuery("CHICKEN"))
	})

	suite.Run("TagAndIngredient_ShouldMatch", func() {
		assert.True(suite.T(), r.MatchesQuery("one-pan"))
		assert.True(suite.T(), r.MatchesQuery("broccoli"))
	})

	suite.Run("UnrelatedQuery_ShouldNotMatch", func() {
		assert.False(suite.T(), r.MatchesQuery("salmon"))
	})
}

func (suite *RecipeTestSuite) TestSortOptionValidation() {
	assert.True(suite.T(), SortNewest.IsValid())
	assert.True(suite.T(), SortMostPopular.IsValid())
	assert.True(suite.T(), SortHighestProtein.IsValid())
	assert.True(suite.T(), SortLowestCalories.IsValid())
	assert.False(suite.T(), SortOption("alphabetical").IsValid())
}

func TestRecipeTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeTestSuite))
}
