// Package projection maps persisted entities onto the response shapes in
// domain. Each output shape has exactly one function.
package projection

import (
	"foodgram/domain"
	"foodgram/entities"
)

func ToUserProfile(u *entities.User, isSubscribed bool) domain.UserProfile {
	if u == nil {
		return domain.UserProfile{}
	}
	return domain.UserProfile{
		ID:           u.ID.String(),
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
		Avatar:       u.AvatarURL,
	}
}

func ToIngredient(i *entities.Ingredient) domain.Ingredient {
	return domain.Ingredient{
		ID:              i.ID.String(),
		Name:            i.Name,
		MeasurementUnit: i.MeasurementUnit,
	}
}

func ToRecipeMinified(r *entities.Recipe) domain.RecipeMinified {
	return domain.RecipeMinified{
		ID:          r.ID.String(),
		Name:        r.Name,
		Image:       r.ImageURL,
		CookingTime: r.CookingTime,
	}
}

func ToRecipeMinifiedList(recipes []*entities.Recipe) []domain.RecipeMinified {
	out := make([]domain.RecipeMinified, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, ToRecipeMinified(r))
	}
	return out
}

// RecipeFlags carries the viewer-relative facts of a recipe representation.
type RecipeFlags struct {
	IsFavorited      bool
	IsInShoppingCart bool
	AuthorFollowed   bool
}

func ToRecipe(r *entities.Recipe, ingredients []domain.RecipeIngredient, flags RecipeFlags) domain.Recipe {
	if ingredients == nil {
		ingredients = []domain.RecipeIngredient{}
	}
	return domain.Recipe{
		ID:               r.ID.String(),
		Author:           ToUserProfile(r.Author, flags.AuthorFollowed),
		Ingredients:      ingredients,
		IsFavorited:      flags.IsFavorited,
		IsInShoppingCart: flags.IsInShoppingCart,
		Name:             r.Name,
		Image:            r.ImageURL,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
		PublishedAt:      r.PublishedAt,
	}
}
