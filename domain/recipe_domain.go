package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessAddFavorite     = "recipe added to favorites"
	MessageSuccessRemoveFavorite  = "recipe removed from favorites"
	MessageSuccessAddToCart       = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart  = "recipe removed from shopping cart"
	MessageSuccessGetShortLink    = "success get short link"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedAddFavorite     = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite  = "failed to remove recipe from favorites"
	MessageFailedAddToCart       = "failed to add recipe to shopping cart"
	MessageFailedRemoveFromCart  = "failed to remove recipe from shopping cart"
	MessageFailedGetShortLink    = "failed to get short link"

	ErrRecipeNotFound           = fmt.Errorf("%w: recipe not found", ErrNotFound)
	ErrUnauthorizedRecipeAccess = fmt.Errorf("%w: only the author can change this recipe", ErrForbidden)
	ErrNoIngredients            = fmt.Errorf("%w: at least one ingredient is required", ErrValidation)
	ErrDuplicateIngredient      = fmt.Errorf("%w: ingredients must be unique", ErrValidation)
	ErrAlreadyFavorited         = fmt.Errorf("%w: recipe is already in favorites", ErrConflict)
	ErrNotFavorited             = fmt.Errorf("%w: recipe is not in favorites", ErrNotFound)
	ErrAlreadyInCart            = fmt.Errorf("%w: recipe is already in the shopping cart", ErrConflict)
	ErrNotInCart                = fmt.Errorf("%w: recipe is not in the shopping cart", ErrNotFound)
	ErrShortLinkNotFound        = fmt.Errorf("%w: short link not found", ErrNotFound)
)

type (
	IngredientAmount struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required"`
	}

	CreateRecipeRequest struct {
		Name        string             `json:"name" validate:"required,max=256"`
		Text        string             `json:"text" validate:"required"`
		CookingTime int                `json:"cooking_time" validate:"required"`
		Image       string             `json:"image" validate:"required"`
		Ingredients []IngredientAmount `json:"ingredients" validate:"required,dive"`
	}

	// UpdateRecipeRequest is a partial update: nil fields are left unchanged.
	UpdateRecipeRequest struct {
		Name        *string             `json:"name" validate:"omitempty,min=1,max=256"`
		Text        *string             `json:"text" validate:"omitempty,min=1"`
		CookingTime *int                `json:"cooking_time"`
		Image       *string             `json:"image"`
		Ingredients *[]IngredientAmount `json:"ingredients" validate:"omitempty,dive"`
	}

	RecipeFilter struct {
		PageRequest
		AuthorID         string
		IsFavorited      bool
		IsInShoppingCart bool
	}

	RecipeIngredient struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	Recipe struct {
		ID               string             `json:"id"`
		Author           UserProfile        `json:"author"`
		Ingredients      []RecipeIngredient `json:"ingredients"`
		IsFavorited      bool               `json:"is_favorited"`
		IsInShoppingCart bool               `json:"is_in_shopping_cart"`
		Name             string             `json:"name"`
		Image            string             `json:"image"`
		Text             string             `json:"text"`
		CookingTime      int                `json:"cooking_time"`
		PublishedAt      time.Time          `json:"published_at"`
	}

	// RecipeMinified is the short shape used by relation toggles and
	// subscription listings.
	RecipeMinified struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}

	ShortLinkResponse struct {
		ShortLink string `json:"short-link"`
	}
)
