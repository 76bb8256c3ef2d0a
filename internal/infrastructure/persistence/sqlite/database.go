// Package sqlite provides database setup, migration and seeding for the
// local store, with a postgres option for shared deployments.
package sqlite

import (
	"fmt"
	"time"

	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/config"
	gormModels "github.com/xiuxiu06/leos-kitchen/internal/infrastructure/persistence/gorm"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDatabase opens the configured store and runs auto-migration.
// Creating the schema is idempotent, so every start doubles as
// initialization on a fresh file.
func SetupDatabase(cfg config.DatabaseConfig, logLevel logger.LogLevel) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}

	var db *gorm.DB
	var err error
	switch cfg.Driver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	default:
		path := cfg.Database
		if path == "" {
			path = ":memory:"
		}
		db, err = gorm.Open(sqlite.Open(path), gormConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(gormModels.AllModels()...); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	return db, nil
}

// sha256("password"), the digest scheme used for all stored passwords
const demoPasswordHash = "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"

// SeedDatabase populates an empty store with demo accounts and meals
func SeedDatabase(db *gorm.DB) error {
	var userCount int64
	db.Model(&gormModels.UserModel{}).Count(&userCount)
	if userCount > 0 {
		return nil // Already seeded
	}

	demoUsers := []gormModels.UserModel{
		{
			Username:     "LeoTheChef",
			Email:        "leo@leoskitchen.com",
			PasswordHash: demoPasswordHash,
			FullName:     "Leo",
			Bio:          "Resident feline chef. High protein, no compromises.",
			DateJoined:   "2025-01-15",
			IsPremium:    true,
		},
		{
			Username:     "HealthyChef",
			Email:        "healthychef@example.com",
			PasswordHash: demoPasswordHash,
			FullName:     "Dana Reyes",
			Bio:          "Meal prep every Sunday. Macros first, flavor always.",
			DateJoined:   "2025-02-01",
		},
		{
			Username:     "FitnessFoodie",
			Email:        "fitnessfoodie@example.com",
			PasswordHash: demoPasswordHash,
			DateJoined:   "2025-02-10",
		},
	}
	if err := db.Create(&demoUsers).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	posted := func(daysAgo int) time.Time {
		return time.Now().AddDate(0, 0, -daysAgo)
	}

	demoRecipes := []gormModels.RecipeModel{
		{
			Name:        "Protein Oatmeal",
			Description: "Rolled oats cooked in milk with a scoop of whey stirred in off the heat.",
			AuthorID:    demoUsers[0].ID,
			Category:    "breakfast",
			Tags:        gormModels.StringSlice{"high-protein", "quick", "meal-prep"},
			Ingredients: gormModels.StringSlice{"rolled oats", "milk", "whey protein", "banana", "cinnamon"},
			Protein:     32, Carbs: 54, Fat: 9,
			Calories: 32*4 + 54*4 + 9*9,
			Rating:   4.7, Reviews: 128, Likes: 64,
			PostedAt: posted(2),
		},
		{
			Name:        "Chicken Stir Fry",
			Description: "Sliced chicken breast with broccoli and peppers over jasmine rice.",
			AuthorID:    demoUsers[1].ID,
			Category:    "dinner",
			Tags:        gormModels.StringSlice{"high-protein", "one-pan"},
			Ingredients: gormModels.StringSlice{"chicken breast", "broccoli", "bell pepper", "soy sauce", "jasmine rice"},
			Protein:     38, Carbs: 45, Fat: 12,
			Calories: 38*4 + 45*4 + 12*9,
			Rating:   4.5, Reviews: 87, Likes: 41,
			PostedAt: posted(5),
		},
		{
			Name:        "Greek Yogurt Bowl",
			Description: "Thick yogurt with berries, honey and toasted almonds.",
			AuthorID:    demoUsers[2].ID,
			Category:    "snacks",
			Tags:        gormModels.StringSlice{"no-cook", "high-protein"},
			Ingredients: gormModels.StringSlice{"greek yogurt", "mixed berries", "honey", "almonds"},
			Protein:     24, Carbs: 30, Fat: 11,
			Calories: 24*4 + 30*4 + 11*9,
			Rating:   4.8, Reviews: 156, Likes: 93,
			PostedAt: posted(1),
		},
		{
			Name:        "Salmon with Veggies",
			Description: "Oven-roasted salmon fillet with asparagus and lemon.",
			AuthorID:    demoUsers[0].ID,
			Category:    "dinner",
			Tags:        gormModels.StringSlice{"omega-3", "low-carb"},
			Ingredients: gormModels.StringSlice{"salmon fillet", "asparagus", "olive oil", "lemon"},
			Protein:     34, Carbs: 12, Fat: 22,
			Calories: 34*4 + 12*4 + 22*9,
			Rating:   4.6, Reviews: 64, Likes: 37,
			PostedAt: posted(8),
		},
		{
			Name:        "Protein Brownies",
			Description: "Fudgy brownies with casein swapped in for half the flour.",
			AuthorID:    demoUsers[1].ID,
			Category:    "desserts",
			Tags:        gormModels.StringSlice{"dessert", "high-protein"},
			Ingredients: gormModels.StringSlice{"cocoa powder", "casein protein", "eggs", "maple syrup", "flour"},
			Protein:     18, Carbs: 28, Fat: 10,
			Calories: 18*4 + 28*4 + 10*9,
			Rating:   4.3, Reviews: 45, Likes: 22,
			PostedAt: posted(12),
		},
		{
			Name:        "Tuna Wrap",
			Description: "Canned tuna with yogurt dressing in a whole wheat tortilla.",
			AuthorID:    demoUsers[2].ID,
			Category:    "lunch",
			Tags:        gormModels.StringSlice{"quick", "budget"},
			Ingredients: gormModels.StringSlice{"canned tuna", "greek yogurt", "whole wheat tortilla", "lettuce"},
			Protein:     29, Carbs: 33, Fat: 8,
			Calories: 29*4 + 33*4 + 8*9,
			Rating:   4.1, Reviews: 31, Likes: 12,
			PostedAt: posted(4),
		},
	}
	if err := db.Create(&demoRecipes).Error; err != nil {
		return fmt.Errorf("failed to seed recipes: %w", err)
	}

	return nil
}
