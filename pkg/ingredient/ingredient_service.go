package ingredient

import (
	"context"
	"errors"
	"strings"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/pkg/projection"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error)
		GetIngredient(ctx context.Context, id string) (domain.Ingredient, error)
		ImportIngredients(ctx context.Context, items []domain.IngredientImportItem) (domain.IngredientImportResult, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

func (s *ingredientService) GetIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx, namePrefix)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Ingredient, 0, len(ingredients))
	for _, i := range ingredients {
		result = append(result, projection.ToIngredient(i))
	}
	return result, nil
}

func (s *ingredientService) GetIngredient(ctx context.Context, id string) (domain.Ingredient, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Ingredient{}, domain.ErrIngredientNotFound
	}
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Ingredient{}, domain.ErrIngredientNotFound
		}
		return domain.Ingredient{}, err
	}
	return projection.ToIngredient(ingredient), nil
}

// ImportIngredients loads catalog entries, skipping incomplete items and
// pairs that already exist. Duplicates inside items are collapsed.
func (s *ingredientService) ImportIngredients(ctx context.Context, items []domain.IngredientImportItem) (domain.IngredientImportResult, error) {
	var result domain.IngredientImportResult
	seen := make(map[[2]string]struct{}, len(items))
	batch := make([]*entities.Ingredient, 0, len(items))

	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		unit := strings.TrimSpace(item.MeasurementUnit)
		if name == "" || unit == "" {
			log.Warnf("skipping incomplete ingredient %+v", item)
			result.Skipped++
			continue
		}
		key := [2]string{name, unit}
		if _, dup := seen[key]; dup {
			result.Skipped++
			continue
		}
		seen[key] = struct{}{}
		batch = append(batch, &entities.Ingredient{Name: name, MeasurementUnit: unit})
	}

	created, err := s.ingredientRepository.InsertMissing(ctx, batch)
	if err != nil {
		return domain.IngredientImportResult{}, err
	}
	result.Created = int(created)
	result.Skipped += len(batch) - int(created)
	return result, nil
}
