package ingredient

import (
	"context"
	"errors"
	"testing"

	"foodgram/domain"
	"foodgram/internal/testutil"

	"github.com/google/uuid"
)

func TestGetIngredientsFiltersByPrefix(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateIngredient(t, db, "Sugar", "g")
	testutil.CreateIngredient(t, db, "salt", "g")
	testutil.CreateIngredient(t, db, "Flour", "g")
	testutil.CreateIngredient(t, db, "Salmon", "kg")
	svc := NewIngredientService(NewIngredientRepository(db))

	got, err := svc.GetIngredients(context.Background(), "SAL")
	if err != nil {
		t.Fatalf("GetIngredients: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Salmon" || got[1].Name != "salt" {
		t.Fatalf("unexpected prefix result: %+v", got)
	}

	all, err := svc.GetIngredients(context.Background(), "")
	if err != nil {
		t.Fatalf("GetIngredients: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 ingredients, got %d", len(all))
	}

	none, err := svc.GetIngredients(context.Background(), "%")
	if err != nil {
		t.Fatalf("GetIngredients: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("wildcard must be matched literally, got %+v", none)
	}
}

func TestGetIngredientNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewIngredientService(NewIngredientRepository(db))

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		if _, err := svc.GetIngredient(context.Background(), id); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("GetIngredient(%q): expected not found, got %v", id, err)
		}
	}

	egg := testutil.CreateIngredient(t, db, "Egg", "pcs")
	got, err := svc.GetIngredient(context.Background(), egg.ID.String())
	if err != nil {
		t.Fatalf("GetIngredient: %v", err)
	}
	if got.Name != "Egg" || got.MeasurementUnit != "pcs" {
		t.Fatalf("unexpected ingredient %+v", got)
	}
}

func TestImportIngredients(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateIngredient(t, db, "Egg", "pcs")
	svc := NewIngredientService(NewIngredientRepository(db))

	res, err := svc.ImportIngredients(context.Background(), []domain.IngredientImportItem{
		{Name: "Egg", MeasurementUnit: "pcs"},
		{Name: "Milk", MeasurementUnit: "ml"},
		{Name: "Milk", MeasurementUnit: "ml"},
		{Name: "Milk", MeasurementUnit: "l"},
		{Name: "", MeasurementUnit: "g"},
		{Name: "Pepper"},
	})
	if err != nil {
		t.Fatalf("ImportIngredients: %v", err)
	}
	if res.Created != 2 || res.Skipped != 4 {
		t.Fatalf("unexpected import result %+v", res)
	}

	all, err := svc.GetIngredients(context.Background(), "")
	if err != nil {
		t.Fatalf("GetIngredients: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 catalog rows, got %d", len(all))
	}
}
