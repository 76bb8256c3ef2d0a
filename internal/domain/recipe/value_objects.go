package recipe

// Value objects describing aspects of a shared meal.

// Category classifies a meal by the part of the day it belongs to
type Category string

const (
	CategoryBreakfast Category = "breakfast"
	CategoryLunch     Category = "lunch"
	CategoryDinner    Category = "dinner"
	CategorySnacks    Category = "snacks"
	CategoryDesserts  Category = "desserts"
)

// Categories lists every valid category in display order
func Categories() []Category {
	return []Category{
		CategoryBreakfast,
		CategoryLunch,
		CategoryDinner,
		CategorySnacks,
		CategoryDesserts,
	}
}

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	switch c {
	case CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnacks, CategoryDesserts:
		return true
	}
	return false
}

// SortOption orders the community feed
type SortOption string

const (
	SortNewest         SortOption = "newest"
	SortMostPopular    SortOption = "most_popular"
	SortHighestProtein SortOption = "highest_protein"
	SortLowestCalories SortOption = "lowest_calories"
)

// IsValid reports whether s is a known sort option
func (s SortOption) IsValid() bool {
	switch s {
	case SortNewest, SortMostPopular, SortHighestProtein, SortLowestCalories:
		return true
	}
	return false
}

// Macros holds per-serving nutrition facts. Protein, carbs and fat are in
// grams; sodium and cholesterol in milligrams.
type Macros struct {
	Protein      int
	Carbs        int
	Fat          int
	Calories     int
	Fiber        int
	Sugar        int
	Sodium       int
	Cholesterol  int
	SaturatedFat int
	TransFat     int
}

// DerivedCalories computes calories from the macronutrients using the
// 4/4/9 kcal-per-gram factors.
func (m Macros) DerivedCalories() int {
	return m.Protein*4 + m.Carbs*4 + m.Fat*9
}

// Validate validates the macros
func (m Macros) Validate() error {
	if m.Protein < 0 || m.Carbs < 0 || m.Fat < 0 || m.Calories < 0 {
		return ErrNegativeMacros
	}
	return nil
}
