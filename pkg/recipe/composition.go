package recipe

import (
	"context"
	"sort"

	"foodgram/domain"
	"foodgram/entities"

	"github.com/google/uuid"
)

// CompositionManager owns the (ingredient, amount) set of a recipe. A set
// is always written as a whole: the old rows are dropped and the new ones
// inserted inside one transaction, or nothing changes.
type CompositionManager struct {
	minAmount int
}

func NewCompositionManager(minAmount int) *CompositionManager {
	if minAmount < 1 {
		minAmount = 1
	}
	return &CompositionManager{minAmount: minAmount}
}

// Validate checks the shape of items without touching the database: the
// list is non-empty, ids are well formed and distinct, amounts reach the
// minimum.
func (m *CompositionManager) Validate(items []domain.IngredientAmount) ([]uuid.UUID, error) {
	if len(items) == 0 {
		return nil, domain.ErrNoIngredients
	}

	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		id, err := uuid.Parse(item.ID)
		if err != nil {
			return nil, domain.Validationf("ingredient id %q is malformed", item.ID)
		}
		if _, dup := seen[id]; dup {
			return nil, domain.ErrDuplicateIngredient
		}
		seen[id] = struct{}{}
		if item.Amount < m.minAmount {
			return nil, domain.Validationf("amount of ingredient %s must be at least %d", id, m.minAmount)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Set replaces the composition of recipeID with items.
func (m *CompositionManager) Set(ctx context.Context, recipeRepository RecipeRepository, recipeID uuid.UUID, items []domain.IngredientAmount) error {
	ids, err := m.Validate(items)
	if err != nil {
		return err
	}

	return recipeRepository.Transaction(ctx, func(repo RecipeRepository) error {
		existing, err := repo.FindExistingIngredientIDs(ctx, ids)
		if err != nil {
			return err
		}
		if len(existing) != len(ids) {
			known := make(map[uuid.UUID]struct{}, len(existing))
			for _, id := range existing {
				known[id] = struct{}{}
			}
			for _, id := range ids {
				if _, ok := known[id]; !ok {
					return domain.Validationf("ingredient %s does not exist", id)
				}
			}
		}

		rows := make([]*entities.RecipeIngredient, 0, len(items))
		for i, item := range items {
			rows = append(rows, &entities.RecipeIngredient{
				RecipeID:     recipeID,
				IngredientID: ids[i],
				Amount:       item.Amount,
			})
		}
		return repo.ReplaceComposition(ctx, recipeID, rows)
	})
}

// Read returns the composition of recipeID sorted by ingredient name.
func (m *CompositionManager) Read(ctx context.Context, recipeRepository RecipeRepository, recipeID uuid.UUID) ([]domain.RecipeIngredient, error) {
	rows, err := recipeRepository.GetCompositions(ctx, []uuid.UUID{recipeID})
	if err != nil {
		return nil, err
	}
	return toRecipeIngredients(rows[recipeID]), nil
}

func toRecipeIngredients(rows []CompositionRow) []domain.RecipeIngredient {
	out := make([]domain.RecipeIngredient, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.RecipeIngredient{
			ID:              row.IngredientID.String(),
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          row.Amount,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].MeasurementUnit < out[j].MeasurementUnit
	})
	return out
}
