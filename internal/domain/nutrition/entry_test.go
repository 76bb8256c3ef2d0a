package nutrition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// NutritionTestSuite provides a test suite for nutrition entries
type NutritionTestSuite struct {
	suite.Suite
}

func (suite *NutritionTestSuite) TestEntryCreation() {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	suite.Run("ValidEntry_ShouldCreateSuccessfully", func() {
		e, err := NewEntry(1, today, 120, 200, 60, 0)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), int64(1), e.UserID)
		assert.Equal(suite.T(), 120*4+200*4+60*9, e.Calories)
	})

	suite.Run("ExplicitCalories_ShouldBeKept", func() {
		e, err := NewEntry(1, today, 120, 200, 60, 2000)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 2000, e.Calories)
	})

	suite.Run("MissingUser_ShouldReturnError", func() {
		_, err := NewEntry(0, today, 100, 100, 30, 0)

		assert.ErrorIs(suite.T(), err, ErrNoUser)
	})

	suite.Run("NegativeValues_ShouldReturnError", func() {
		_, err := NewEntry(1, today, -1, 100, 30, 0)

		assert.ErrorIs(suite.T(), err, ErrNegativeValues)
	})
}

func (suite *NutritionTestSuite) TestWeeklySummary() {
	day := func(n int) time.Time {
		return time.Date(2026, 8, n, 0, 0, 0, 0, time.UTC)
	}

	suite.Run("EmptyHistory_ShouldYieldZeroSummary", func() {
		s := WeeklySummary(nil)

		assert.Zero(suite.T(), s.Days)
		assert.Zero(suite.T(), s.AvgCalories)
	})

	suite.Run("ConstantIntake_ShouldYieldZeroDeltas", func() {
		var entries []Entry
		for i := 1; i <= 7; i++ {
			entries = append(entries, Entry{UserID: 1, Date: day(i), Protein: 100, Carbs: 150, Fat: 50, Calories: 1450})
		}

		s := WeeklySummary(entries)

		assert.Equal(suite.T(), 7, s.Days)
		assert.Equal(suite.T(), 100, s.AvgProtein)
		assert.Equal(suite.T(), 1450, s.AvgCalories)
		assert.Zero(suite.T(), s.DeltaProtein)
		assert.Zero(suite.T(), s.DeltaCalories)
	})

	suite.Run("RisingIntake_ShouldYieldPositiveDeltas", func() {
		// Protein 100, 110, 120: average 110, first 100
		entries := []Entry{
			{UserID: 1, Date: day(1), Protein: 100, Calories: 400},
			{UserID: 1, Date: day(2), Protein: 110, Calories: 440},
			{UserID: 1, Date: day(3), Protein: 120, Calories: 480},
		}

		s := WeeklySummary(entries)

		assert.Equal(suite.T(), 3, s.Days)
		assert.Equal(suite.T(), 110, s.AvgProtein)
		assert.Equal(suite.T(), 10, s.DeltaProtein)
		assert.Equal(suite.T(), 40, s.DeltaCalories)
	})

	suite.Run("LongHistory_ShouldUseOnlyLastSevenEntries", func() {
		var entries []Entry
		for i := 1; i <= 10; i++ {
			entries = append(entries, Entry{UserID: 1, Date: day(i), Protein: i * 10})
		}

		s := WeeklySummary(entries)

		// Window is days 4..10: protein 40..100, average 70
		assert.Equal(suite.T(), 7, s.Days)
		assert.Equal(suite.T(), 70, s.AvgProtein)
		assert.Equal(suite.T(), 30, s.DeltaProtein)
	})

	suite.Run("AverageRounding_ShouldRoundHalfUp", func() {
		entries := []Entry{
			{UserID: 1, Date: day(1), Protein: 1},
			{UserID: 1, Date: day(2), Protein: 2},
		}

		s := WeeklySummary(entries)

		assert.Equal(suite.T(), 2, s.AvgProtein)
	})
}

func TestNutritionTestSuite(t *testing.T) {
	suite.Run(t, new(NutritionTestSuite))
}
