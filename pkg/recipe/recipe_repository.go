package recipe

import (
	"context"

	"foodgram/domain"
	"foodgram/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		// Transaction runs fn against a repository bound to one database
		// transaction. Nested calls use savepoints.
		Transaction(ctx context.Context, fn func(repo RecipeRepository) error) error

		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		UpdateRecipe(ctx context.Context, id uuid.UUID, fields map[string]any) error
		DeleteRecipe(ctx context.Context, id uuid.UUID) error
		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) ([]*entities.Recipe, int64, error)
		GetRecipeByShortCode(ctx context.Context, code string) (*entities.Recipe, error)

		// Composition
		FindExistingIngredientIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
		ReplaceComposition(ctx context.Context, recipeID uuid.UUID, rows []*entities.RecipeIngredient) error
		GetCompositions(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]CompositionRow, error)

		// Favorite and shopping cart relations
		RelationExists(ctx context.Context, rel Relation, userID, recipeID uuid.UUID) (bool, error)
		AddRelation(ctx context.Context, rel Relation, userID, recipeID uuid.UUID) error
		RemoveRelation(ctx context.Context, rel Relation, userID, recipeID uuid.UUID) (int64, error)
		CountRelations(ctx context.Context, rel Relation, userID uuid.UUID) (int64, error)
		RelatedRecipeIDs(ctx context.Context, rel Relation, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	}

	// CompositionRow is one ingredient line of a recipe joined with the
	// catalog entry it references.
	CompositionRow struct {
		RecipeID        uuid.UUID
		IngredientID    uuid.UUID
		Name            string
		MeasurementUnit string
		Amount          int
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Transaction(ctx context.Context, fn func(repo RecipeRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&recipeRepository{db: tx})
	})
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit("Author", "Ingredients").Create(recipe).Error
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entities.Recipe{}).Where("id = ?", id).Updates(fields).Error
}

// DeleteRecipe removes the recipe together with its composition rows and
// every favorite and cart entry that points at it.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("recipe_id = ?", id).Delete(&entities.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if err := db.Where("recipe_id = ?", id).Delete(&entities.FavoriteRecipe{}).Error; err != nil {
		return err
	}
	if err := db.Where("recipe_id = ?", id).Delete(&entities.ShoppingCartItem{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&entities.Recipe{}).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	query := r.db.WithContext(ctx).Model(&entities.Recipe{})
	if filter.AuthorID != "" {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if viewerID != "" {
		if filter.IsFavorited {
			query = query.Where("id IN (?)", r.db.Model(&entities.FavoriteRecipe{}).Select("recipe_id").Where("user_id = ?", viewerID))
		}
		if filter.IsInShoppingCart {
			query = query.Where("id IN (?)", r.db.Model(&entities.ShoppingCartItem{}).Select("recipe_id").Where("user_id = ?", viewerID))
		}
	}

	query = query.Session(&gorm.Session{})
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Author").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Order("published_at desc").
		Order("id asc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetRecipeByShortCode(ctx context.Context, code string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("CAST(id AS TEXT) LIKE ?", code+"%").
		Order("published_at desc").
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) FindExistingIngredientIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	var found []uuid.UUID
	if len(ids) == 0 {
		return found, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Ingredient{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

func (r *recipeRepository) ReplaceComposition(ctx context.Context, recipeID uuid.UUID, rows []*entities.RecipeIngredient) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("recipe_id = ?", recipeID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return db.Omit("Recipe", "Ingredient").Create(rows).Error
}

func (r *recipeRepository) GetCompositions(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]CompositionRow, error) {
	result := make(map[uuid.UUID][]CompositionRow, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	var rows []CompositionRow
	if err := r.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("recipe_ingredients.recipe_id, recipe_ingredients.ingredient_id, ingredients.name, ingredients.measurement_unit, recipe_ingredients.amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_ingredients.recipe_id IN ?", recipeIDs).
		Order("ingredients.name asc").
		Order("ingredients.measurement_unit asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.RecipeID] = append(result[row.RecipeID], row)
	}
	return result, nil
}

func (r *recipeRepository) RelationExists(ctx context.Context, rel Relation, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(rel.model()).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) AddRelation(ctx context.Context, rel Relation, userID, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).Omit("User", "Recipe").Create(rel.row(userID, recipeID)).Error
}

func (r *recipeRepository) RemoveRelation(ctx context.Context, rel Relation, userID, recipeID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(rel.model())
	return res.RowsAffected, res.Error
}

func (r *recipeRepository) CountRelations(ctx context.Context, rel Relation, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(rel.model()).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *recipeRepository) RelatedRecipeIDs(ctx context.Context, rel Relation, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(rel.model()).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
