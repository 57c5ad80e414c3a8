package domain

import "fmt"

var (
	MessageSuccessGetIngredients = "success get ingredients"
	MessageSuccessGetIngredient  = "success get ingredient"

	MessageFailedGetIngredients = "failed to get ingredients"
	MessageFailedGetIngredient  = "failed to get ingredient"

	ErrIngredientNotFound = fmt.Errorf("%w: ingredient not found", ErrNotFound)
)

type (
	Ingredient struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}

	IngredientImportItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}

	IngredientImportResult struct {
		Created int `json:"created"`
		Skipped int `json:"skipped"`
	}
)
