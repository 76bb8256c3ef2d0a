package recipe_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xiuxiu06/leos-kitchen/internal/application/auth"
	apprecipe "github.com/xiuxiu06/leos-kitchen/internal/application/recipe"
	"github.com/xiuxiu06/leos-kitchen/internal/domain/recipe"
	"github.com/xiuxiu06/leos-kitchen/internal/ports/outbound"
	apperrors "github.com/xiuxiu06/leos-kitchen/pkg/errors"
	"github.com/xiuxiu06/leos-kitchen/test/testutils"
	"go.uber.org/zap"
)

// RecipeServiceTestSuite provides a test suite for the feed use cases
type RecipeServiceTestSuite struct {
	suite.Suite
	recipes *testutils.FakeRecipeRepository
	cache   *testutils.FakeCache
	service *apprecipe.Service
	ctx     context.Context
	sess    auth.Session
}

func (suite *RecipeServiceTestSuite) SetupTest() {
	suite.recipes = testutils.NewFakeRecipeRepository()
	suite.cache = testutils.NewFakeCache()
	suite.service = apprecipe.NewService(suite.recipes, suite.cache, zap.NewNop())
	suite.ctx = context.Background()
	suite.sess = auth.Session{Authenticated: true, UserID: 1, Username: "leo"}
}

func (suite *RecipeServiceTestSuite) share(name string, category string, protein, calories int, postedAt time.Time) int64 {
	r := recipe.Reconstitute(recipe.ReconstituteParams{
		Name:     name,
		AuthorID: 1,
		Category: recipe.Category(category),
		Macros:   recipe.Macros{Protein: protein, Calories: calories},
		PostedAt: postedAt,
	})
	require.NoError(suite.T(), suite.recipes.Create(suite.ctx, r))
	return r.ID()
}

func (suite *RecipeServiceTestSuite) TestShare() {
	suite.Run("ValidShare_ShouldAssignIDAndDeriveCalories", func() {
		dto, err := suite.service.Share(suite.ctx, suite.sess, apprecipe.ShareCommand{
			Name:     "Protein Oatmeal",
			Category: "breakfast",
			Protein:  30, Carbs: 40, Fat: 10,
		})

		require.NoError(suite.T(), err)
		assert.NotZero(suite.T(), dto.ID)
		assert.Equal(suite.T(), "leo", dto.Author)
		assert.Equal(suite.T(), 30*4+40*4+10*9, dto.Calories)
	})

	suite.Run("AnonymousShare_ShouldBeUnauthorized", func() {
		_, err := suite.service.Share(suite.ctx, auth.NewSession(), apprecipe.ShareCommand{
			Name:     "Protein Oatmeal",
			Category: "breakfast",
		})

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeUnauthorized, err.(*apperrors.AppError).Code)
	})

	suite.Run("UnknownCategory_ShouldFailValidation", func() {
		_, err := suite.service.Share(suite.ctx, suite.sess, apprecipe.ShareCommand{
			Name:     "Protein Oatmeal",
			Category: "brunch",
		})

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeValidationFailed, err.(*apperrors.AppError).Code)
	})
}

func (suite *RecipeServiceTestSuite) TestFeed() {
	now := time.Now()

	seed := func() (oldID, newID, proteinID int64) {
		oldID = suite.share("Tuna Wrap", "lunch", 20, 400, now.Add(-48*time.Hour))
		newID = suite.share("Greek Yogurt Bowl", "snacks", 24, 350, now)
		proteinID = suite.share("Chicken Stir Fry", "dinner", 38, 500, now.Add(-24*time.Hour))
		return
	}

	suite.Run("DefaultSort_ShouldReturnNewestFirst", func() {
		suite.SetupTest()
		_, newID, _ := seed()

		page, err := suite.service.Feed(suite.ctx, outbound.FeedQuery{})

		require.NoError(suite.T(), err)
		require.Len(suite.T(), page.Recipes, 3)
		assert.Equal(suite.T(), newID, page.Recipes[0].ID)
		assert.Equal(suite.T(), 3, page.Total)
	})

	suite.Run("HighestProteinSort_ShouldOrderByProtein", func() {
		suite.SetupTest()
		_, _, proteinID := seed()

		page, err := suite.service.Feed(suite.ctx, outbound.FeedQuery{SortBy: recipe.SortHighestProtein})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), proteinID, page.Recipes[0].ID)
	})

	suite.Run("MostPopularSort_ShouldOrderByReviewCount", func() {
		suite.SetupTest()
		wellLiked := recipe.Reconstitute(recipe.ReconstituteParams{
			Name: "Tuna Wrap", AuthorID: 1, Category: "lunch",
			Reviews: 3, Likes: 90, PostedAt: now,
		})
		wellReviewed := recipe.Reconstitute(recipe.ReconstituteParams{
			Name: "Chicken Stir Fry", AuthorID: 1, Category: "dinner",
			Reviews: 12, Likes: 5, PostedAt: now.Add(-24 * time.Hour),
		})
		require.NoError(suite.T(), suite.recipes.Create(suite.ctx, wellLiked))
		require.NoError(suite.T(), suite.recipes.Create(suite.ctx, wellReviewed))

		page, err := suite.service.Feed(suite.ctx, outbound.FeedQuery{SortBy: recipe.SortMostPopular})

		// Popularity ranks by review count, not likes
		require.NoError(suite.T(), err)
		require.Len(suite.T(), page.Recipes, 2)
		assert.Equal(suite.T(), "Chicken Stir Fry", page.Recipes[0].Name)
	})

	suite.Run("LowestCaloriesSort_ShouldOrderAscending", func() {
		suite.SetupTest()
		seed()

		page, err := suite.service.Feed(suite.ctx, outbound.FeedQuery{SortBy: recipe.SortLowestCalories})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Greek Yogurt Bowl", page.Recipes[0].Name)
	})

	suite.Run("CategoryFilter_ShouldNarrowResults", func() {
		suite.SetupTest()
		seed()

		page, err := suite.service.Feed(suite.ctx, outbound.FeedQuery{Category: recipe.CategoryLunch})

		require.NoError(suite.T(), err)
		require.Len(suite.T(), page.Recipes, 1)
		assert.Equal(suite.T(), "Tuna Wrap", page.Recipes[0].Name)
	})

	suite.Run("SearchQuery_ShouldMatchCaseInsensitive", func() {
		suite.SetupTest()
		seed()

		page, err := suite.service.Feed(suite.ctx, outbound.FeedQuery{Search: "chicken"})

		require.NoError(suite.T(), err)
		require.Len(suite.T(), page.Recipes, 1)
		assert.Equal(suite.T(), "Chicken Stir Fry", page.Recipes[0].Name)
	})

	suite.Run("InvalidSort_ShouldFailValidation", func() {
		suite.SetupTest()

		_, err := suite.service.Feed(suite.ctx, outbound.FeedQuery{SortBy: "alphabetical"})

		require.Error(suite.T(), err)
	})

	suite.Run("RepeatedQuery_ShouldServeFromCache", func() {
		suite.SetupTest()
		seed()

		first, err := suite.service.Feed(suite.ctx, outbound.FeedQuery{})
		require.NoError(suite.T(), err)

		// A recipe added behind the cache's back stays invisible until
		// the entry expires or is invalidated
		suite.share("Salmon with Veggies", "dinner", 34, 450, now)

		second, err := suite.service.Feed(suite.ctx, outbound.FeedQuery{})
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), len(first.Recipes), len(second.Recipes))
	})

	suite.Run("CacheFailure_ShouldDegradeToStoreRead", func() {
		suite.SetupTest()
		seed()
		suite.cache.Fail = true

		page, err := suite.service.Feed(suite.ctx, outbound.FeedQuery{})

		require.NoError(suite.T(), err)
		assert.Len(suite.T(), page.Recipes, 3)
	})
}

func (suite *RecipeServiceTestSuite) TestCollections() {
	suite.Run("SaveAndList_ShouldRoundTrip", func() {
		suite.SetupTest()
		id := suite.share("Tuna Wrap", "lunch", 20, 400, time.Now())

		require.NoError(suite.T(), suite.service.SaveToCollection(suite.ctx, suite.sess, id))

		saved, err := suite.service.Saved(suite.ctx, suite.sess)
		require.NoError(suite.T(), err)
		require.Len(suite.T(), saved, 1)
		assert.Equal(suite.T(), id, saved[0].ID)
	})

	suite.Run("DoubleSave_ShouldBeIdempotent", func() {
		suite.SetupTest()
		id := suite.share("Tuna Wrap", "lunch", 20, 400, time.Now())

		require.NoError(suite.T(), suite.service.SaveToCollection(suite.ctx, suite.sess, id))
		require.NoError(suite.T(), suite.service.SaveToCollection(suite.ctx, suite.sess, id))

		saved, err := suite.service.Saved(suite.ctx, suite.sess)
		require.NoError(suite.T(), err)
		assert.Len(suite.T(), saved, 1)
	})

	suite.Run("UnsaveMissing_ShouldBeIdempotent", func() {
		suite.SetupTest()
		id := suite.share("Tuna Wrap", "lunch", 20, 400, time.Now())

		assert.NoError(suite.T(), suite.service.RemoveFromCollection(suite.ctx, suite.sess, id))
	})

	suite.Run("LikeUnknownRecipe_ShouldBeNotFound", func() {
		suite.SetupTest()

		err := suite.service.Like(suite.ctx, suite.sess, 999)

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeRecipeNotFound, err.(*apperrors.AppError).Code)
	})

	suite.Run("AnonymousLike_ShouldBeUnauthorized", func() {
		suite.SetupTest()
		id := suite.share("Tuna Wrap", "lunch", 20, 400, time.Now())

		err := suite.service.Like(suite.ctx, auth.NewSession(), id)

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeUnauthorized, err.(*apperrors.AppError).Code)
	})
}

func TestRecipeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeServiceTestSuite))
}
