package gorm

import (
	"github.com/xiuxiu06/leos-kitchen/internal/domain/nutrition"
	"github.com/xiuxiu06/leos-kitchen/internal/domain/recipe"
	"github.com/xiuxiu06/leos-kitchen/internal/domain/user"
)

func userToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Username:     u.Username(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		FullName:     u.FullName(),
		Bio:          u.Bio(),
		ProfilePic:   u.ProfilePic(),
		DateJoined:   u.DateJoined(),
		IsPremium:    u.IsPremium(),
	}
}

func userToEntity(m *UserModel) *user.User {
	return user.Reconstitute(
		m.ID,
		m.Username,
		m.Email,
		m.PasswordHash,
		m.FullName,
		m.Bio,
		m.ProfilePic,
		m.DateJoined,
		m.IsPremium,
	)
}

func recipeToModel(r *recipe.Recipe) *RecipeModel {
	m := r.Macros()
	return &RecipeModel{
		ID:           r.ID(),
		Name:         r.Name(),
		Description:  r.Description(),
		AuthorID:     r.AuthorID(),
		Category:     string(r.Category()),
		Tags:         StringSlice(r.Tags()),
		Ingredients:  StringSlice(r.Ingredients()),
		Instructions: StringSlice(r.Instructions()),
		RecipeURL:    r.RecipeURL(),
		ImageURL:     r.ImageURL(),
		Protein:      m.Protein,
		Carbs:        m.Carbs,
		Fat:          m.Fat,
		Calories:     m.Calories,
		Fiber:        m.Fiber,
		Sugar:        m.Sugar,
		Sodium:       m.Sodium,
		Cholesterol:  m.Cholesterol,
		SaturatedFat: m.SaturatedFat,
		TransFat:     m.TransFat,
		Rating:       r.Rating(),
		Reviews:      r.Reviews(),
		Likes:        r.Likes(),
		Saves:        r.Saves(),
		PostedAt:     r.PostedAt(),
	}
}

func recipeToEntity(m *RecipeModel) *recipe.Recipe {
	return recipe.Reconstitute(recipe.ReconstituteParams{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		AuthorID:       m.AuthorID,
		AuthorUsername: m.Author.Username,
		Category:       recipe.Category(m.Category),
		Tags:           m.Tags,
		Ingredients:    m.Ingredients,
		Instructions:   m.Instructions,
		RecipeURL:      m.RecipeURL,
		ImageURL:       m.ImageURL,
		Macros: recipe.Macros{
			Protein:      m.Protein,
			Carbs:        m.Carbs,
			Fat:          m.Fat,
			Calories:     m.Calories,
			Fiber:        m.Fiber,
			Sugar:        m.Sugar,
			Sodium:       m.Sodium,
			Cholesterol:  m.Cholesterol,
			SaturatedFat: m.SaturatedFat,
			TransFat:     m.TransFat,
		},
		Rating:   m.Rating,
		Reviews:  m.Reviews,
		Likes:    m.Likes,
		Saves:    m.Saves,
		PostedAt: m.PostedAt,
	})
}

func entryToModel(e nutrition.Entry) *NutritionEntryModel {
	return &NutritionEntryModel{
		ID:       e.ID,
		UserID:   e.UserID,
		Date:     e.Date,
		Protein:  e.Protein,
		Carbs:    e.Carbs,
		Fat:      e.Fat,
		Calories: e.Calories,
	}
}

func entryToEntity(m *NutritionEntryModel) nutrition.Entry {
	return nutrition.Entry{
		ID:       m.ID,
		UserID:   m.UserID,
		Date:     m.Date,
		Protein:  m.Protein,
		Carbs:    m.Carbs,
		Fat:      m.Fat,
		Calories: m.Calories,
	}
}
