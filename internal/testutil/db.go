// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	migration "foodgram/cmd/database/migrate"
	"foodgram/entities"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := migration.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	t.Helper()
	user := &entities.User{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "First " + username,
		LastName:  "Last " + username,
		Password:  "not-a-hash",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func CreateIngredient(t *testing.T, db *gorm.DB, name, unit string) *entities.Ingredient {
	t.Helper()
	ingredient := &entities.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(ingredient).Error; err != nil {
		t.Fatalf("create ingredient %s: %v", name, err)
	}
	return ingredient
}

// Portion is an (ingredient, amount) pair for CreateRecipe.
type Portion struct {
	Ingredient *entities.Ingredient
	Amount     int
}

func CreateRecipe(t *testing.T, db *gorm.DB, author *entities.User, name string, portions ...Portion) *entities.Recipe {
	t.Helper()
	recipe := &entities.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Text:        "Mix and cook " + name,
		CookingTime: 10,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("create recipe %s: %v", name, err)
	}
	for _, p := range portions {
		row := &entities.RecipeIngredient{RecipeID: recipe.ID, IngredientID: p.Ingredient.ID, Amount: p.Amount}
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("create composition row: %v", err)
		}
	}
	return recipe
}

func AddToCart(t *testing.T, db *gorm.DB, user *entities.User, recipe *entities.Recipe) {
	t.Helper()
	if err := db.Create(&entities.ShoppingCartItem{UserID: user.ID, RecipeID: recipe.ID}).Error; err != nil {
		t.Fatalf("add to cart: %v", err)
	}
}
