// Package nutrition contains daily macro tracking and summary math.
package nutrition

import (
	"errors"
	"time"
)

// Entry is one day's recorded macro intake for a user. Protein, carbs and
// fat are in grams.
type Entry struct {
	ID       int64
	UserID   int64
	Date     time.Time
	Protein  int
	Carbs    int
	Fat      int
	Calories int
}

var (
	ErrNoUser         = errors.New("entry must belong to a user")
	ErrNegativeValues = errors.New("nutrition values cannot be negative")
)

// NewEntry creates a daily entry with validation. Calories default to the
// 4/4/9 derivation when omitted.
func NewEntry(userID int64, date time.Time, protein, carbs, fat, calories int) (Entry, error) {
	if userID == 0 {
		return Entry{}, ErrNoUser
	}
	if protein < 0 || carbs < 0 || fat < 0 || calories < 0 {
		return Entry{}, ErrNegativeValues
	}
	if calories == 0 {
		calories = protein*4 + carbs*4 + fat*9
	}
	return Entry{
		UserID:   userID,
		Date:     date,
		Protein:  protein,
		Carbs:    carbs,
		Fat:      fat,
		Calories: calories,
	}, nil
}

// Summary aggregates a run of entries: per-macro averages plus the change
// of the average against the first entry in the window.
type Summary struct {
	Days          int
	AvgProtein    int
	AvgCarbs      int
	AvgFat        int
	AvgCalories   int
	DeltaProtein  int
	DeltaCarbs    int
	DeltaFat      int
	DeltaCalories int
}

// WeeklySummary computes a summary over the last seven entries, or fewer
// when the history is shorter. Entries are expected oldest-first.
func WeeklySummary(entries []Entry) Summary {
	if len(entries) == 0 {
		return Summary{}
	}
	window := entries
	if len(window) > 7 {
		window = window[len(window)-7:]
	}

	var protein, carbs, fat, calories int
	for _, e := range window {
		protein += e.Protein
		carbs += e.Carbs
		fat += e.Fat
		calories += e.Calories
	}

	n := len(window)
	first := window[0]
	s := Summary{
		Days:        n,
		AvgProtein:  round(protein, n),
		AvgCarbs:    round(carbs, n),
		AvgFat:      round(fat, n),
		AvgCalories: round(calories, n),
	}
	s.DeltaProtein = s.AvgProtein - first.Protein
	s.DeltaCarbs = s.AvgCarbs - first.Carbs
	s.DeltaFat = s.AvgFat - first.Fat
	s.DeltaCalories = s.AvgCalories - first.Calories
	return s
}

func round(sum, n int) int {
	return (sum + n/2) / n
}
