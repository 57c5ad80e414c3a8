package recipe

import (
	"context"
	"errors"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/metrics"
	"foodgram/pkg/projection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Relation describes a per-user recipe marker table. Favorites and the
// shopping cart share every rule and differ only in storage and messages.
type Relation struct {
	Name       string
	model      func() any
	row        func(userID, recipeID uuid.UUID) any
	errExists  error
	errMissing error
}

var (
	Favorites = Relation{
		Name:  "favorite",
		model: func() any { return &entities.FavoriteRecipe{} },
		row: func(userID, recipeID uuid.UUID) any {
			return &entities.FavoriteRecipe{UserID: userID, RecipeID: recipeID}
		},
		errExists:  domain.ErrAlreadyFavorited,
		errMissing: domain.ErrNotFavorited,
	}

	ShoppingCart = Relation{
		Name:  "shopping_cart",
		model: func() any { return &entities.ShoppingCartItem{} },
		row: func(userID, recipeID uuid.UUID) any {
			return &entities.ShoppingCartItem{UserID: userID, RecipeID: recipeID}
		},
		errExists:  domain.ErrAlreadyInCart,
		errMissing: domain.ErrNotInCart,
	}
)

// RelationToggle adds and removes (user, recipe) markers of one relation.
type RelationToggle struct {
	recipeRepository RecipeRepository
	relation         Relation
}

func NewRelationToggle(recipeRepository RecipeRepository, relation Relation) *RelationToggle {
	return &RelationToggle{recipeRepository: recipeRepository, relation: relation}
}

// Add marks the recipe for the user. A pair that already exists is a
// conflict; nothing is written in that case.
func (t *RelationToggle) Add(ctx context.Context, userID, recipeID string) (domain.RecipeMinified, error) {
	uid, rid, err := parseRelationIDs(userID, recipeID)
	if err != nil {
		return domain.RecipeMinified{}, err
	}

	var recipe *entities.Recipe
	err = t.recipeRepository.Transaction(ctx, func(repo RecipeRepository) error {
		var err error
		recipe, err = repo.GetRecipeByID(ctx, rid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRecipeNotFound
			}
			return err
		}

		exists, err := repo.RelationExists(ctx, t.relation, uid, rid)
		if err != nil {
			return err
		}
		if exists {
			return t.relation.errExists
		}

		if err := repo.AddRelation(ctx, t.relation, uid, rid); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return t.relation.errExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.RecipeMinified{}, err
	}

	metrics.RelationToggles.WithLabelValues(t.relation.Name, "add").Inc()
	return projection.ToRecipeMinified(recipe), nil
}

// Remove deletes the marker; a missing recipe or pair is not found.
func (t *RelationToggle) Remove(ctx context.Context, userID, recipeID string) error {
	uid, rid, err := parseRelationIDs(userID, recipeID)
	if err != nil {
		return err
	}

	err = t.recipeRepository.Transaction(ctx, func(repo RecipeRepository) error {
		if _, err := repo.GetRecipeByID(ctx, rid); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRecipeNotFound
			}
			return err
		}

		removed, err := repo.RemoveRelation(ctx, t.relation, uid, rid)
		if err != nil {
			return err
		}
		if removed == 0 {
			return t.relation.errMissing
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.RelationToggles.WithLabelValues(t.relation.Name, "remove").Inc()
	return nil
}

func parseRelationIDs(userID, recipeID string) (uuid.UUID, uuid.UUID, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrParseUUID
	}
	rid, err := uuid.Parse(recipeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrRecipeNotFound
	}
	return uid, rid, nil
}
