package nutrition_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xiuxiu06/leos-kitchen/internal/application/auth"
	appnutrition "github.com/xiuxiu06/leos-kitchen/internal/application/nutrition"
	apperrors "github.com/xiuxiu06/leos-kitchen/pkg/errors"
	"github.com/xiuxiu06/leos-kitchen/test/testutils"
	"go.uber.org/zap"
)

// NutritionServiceTestSuite provides a test suite for nutrition tracking
type NutritionServiceTestSuite struct {
	suite.Suite
	entries *testutils.FakeNutritionRepository
	service *appnutrition.Service
	ctx     context.Context
	sess    auth.Session
}

func (suite *NutritionServiceTestSuite) SetupTest() {
	suite.entries = testutils.NewFakeNutritionRepository()
	suite.service = appnutrition.NewService(suite.entries, zap.NewNop())
	suite.ctx = context.Background()
	suite.sess = auth.Session{Authenticated: true, UserID: 1, Username: "leo"}
}

func (suite *NutritionServiceTestSuite) TestLog() {
	suite.Run("ValidEntry_ShouldStoreWithDerivedCalories", func() {
		entry, err := suite.service.Log(suite.ctx, suite.sess, appnutrition.LogCommand{
			Date:    "2026-08-29",
			Protein: 120, Carbs: 200, Fat: 60,
		})

		require.NoError(suite.T(), err)
		assert.NotZero(suite.T(), entry.ID)
		assert.Equal(suite.T(), "2026-08-29", entry.Date)
		assert.Equal(suite.T(), 120*4+200*4+60*9, entry.Calories)
	})

	suite.Run("OmittedDate_ShouldDefaultToToday", func() {
		entry, err := suite.service.Log(suite.ctx, suite.sess, appnutrition.LogCommand{Protein: 100})

		require.NoError(suite.T(), err)
		assert.NotEmpty(suite.T(), entry.Date)
	})

	suite.Run("MalformedDate_ShouldFailValidation", func() {
		_, err := suite.service.Log(suite.ctx, suite.sess, appnutrition.LogCommand{Date: "29/08/2026"})

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeValidationFailed, err.(*apperrors.AppError).Code)
	})

	suite.Run("AnonymousSession_ShouldBeUnauthorized", func() {
		_, err := suite.service.Log(suite.ctx, auth.NewSession(), appnutrition.LogCommand{Protein: 100})

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeUnauthorized, err.(*apperrors.AppError).Code)
	})
}

func (suite *NutritionServiceTestSuite) TestWeekly() {
	suite.Run("TenLoggedDays_ShouldSummarizeLastSeven", func() {
		suite.SetupTest()
		for i := 1; i <= 10; i++ {
			_, err := suite.service.Log(suite.ctx, suite.sess, appnutrition.LogCommand{
				Date:    fmt.Sprintf("2026-08-%02d", i),
				Protein: i * 10,
			})
			require.NoError(suite.T(), err)
		}

		summary, err := suite.service.Weekly(suite.ctx, suite.sess)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 7, summary.Days)
		assert.Equal(suite.T(), 70, summary.AvgProtein)
		assert.Equal(suite.T(), 30, summary.DeltaProtein)
	})

	suite.Run("NoHistory_ShouldYieldEmptySummary", func() {
		suite.SetupTest()

		summary, err := suite.service.Weekly(suite.ctx, suite.sess)

		require.NoError(suite.T(), err)
		assert.Zero(suite.T(), summary.Days)
	})

	suite.Run("OtherUsersEntries_ShouldNotLeakIn", func() {
		suite.SetupTest()
		other := auth.Session{Authenticated: true, UserID: 2, Username: "dana"}
		_, err := suite.service.Log(suite.ctx, other, appnutrition.LogCommand{Date: "2026-08-29", Protein: 500})
		require.NoError(suite.T(), err)

		summary, err := suite.service.Weekly(suite.ctx, suite.sess)

		require.NoError(suite.T(), err)
		assert.Zero(suite.T(), summary.Days)
	})
}

func (suite *NutritionServiceTestSuite) TestRecent() {
	suite.Run("Entries_ShouldComeBackNewestFirst", func() {
		suite.SetupTest()
		for i := 1; i <= 3; i++ {
			_, err := suite.service.Log(suite.ctx, suite.sess, appnutrition.LogCommand{
				Date:    fmt.Sprintf("2026-08-%02d", i),
				Protein: 100,
			})
			require.NoError(suite.T(), err)
		}

		entries, err := suite.service.Recent(suite.ctx, suite.sess, 0)

		require.NoError(suite.T(), err)
		require.Len(suite.T(), entries, 3)
		assert.Equal(suite.T(), "2026-08-03", entries[0].Date)
		assert.Equal(suite.T(), "2026-08-01", entries[2].Date)
	})
}

func TestNutritionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NutritionServiceTestSuite))
}
