package recipe

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/testutil"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/follow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func pngDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
}

type fixture struct {
	db      *gorm.DB
	store   *storage.MemoryStorage
	svc     RecipeService
	author  *entities.User
	viewer  *entities.User
	flour   *entities.Ingredient
	sugar   *entities.Ingredient
	egg     *entities.Ingredient
	ctx     context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	store := storage.NewMemoryStorage()
	svc := NewRecipeService(
		NewRecipeRepository(db),
		follow.NewFollowRepository(db),
		store,
		Limits{MinCookingTime: 1, MinIngredientAmount: 1},
		"http://foodgram.test/",
	)
	return &fixture{
		db:      db,
		store:   store,
		svc:     svc,
		author:  testutil.CreateUser(t, db, "chef"),
		viewer:  testutil.CreateUser(t, db, "guest"),
		flour:   testutil.CreateIngredient(t, db, "Flour", "g"),
		sugar:   testutil.CreateIngredient(t, db, "Sugar", "g"),
		egg:     testutil.CreateIngredient(t, db, "Egg", "pcs"),
		ctx:     context.Background(),
	}
}

func (f *fixture) create(t *testing.T) domain.Recipe {
	t.Helper()
	got, err := f.svc.CreateRecipe(f.ctx, domain.CreateRecipeRequest{
		Name:        "Pancakes",
		Text:        "Whisk and fry.",
		CookingTime: 15,
		Image:       pngDataURI(),
		Ingredients: []domain.IngredientAmount{
			{ID: f.sugar.ID.String(), Amount: 20},
			{ID: f.flour.ID.String(), Amount: 200},
		},
	}, f.author.ID.String())
	if err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}
	return got
}

func TestCreateRecipe(t *testing.T) {
	f := newFixture(t)
	got := f.create(t)

	if got.Name != "Pancakes" || got.CookingTime != 15 || got.Author.Username != "chef" {
		t.Fatalf("unexpected recipe %+v", got)
	}
	if len(got.Ingredients) != 2 || got.Ingredients[0].Name != "Flour" || got.Ingredients[1].Name != "Sugar" {
		t.Fatalf("unexpected ingredients %+v", got.Ingredients)
	}
	if !f.store.Has(got.Image) {
		t.Fatalf("image %q was not stored", got.Image)
	}
	if got.PublishedAt.IsZero() {
		t.Fatal("published_at not set")
	}
}

func TestCreateRecipeFailuresLeaveNoTrace(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		req  domain.CreateRecipeRequest
	}{
		{"cooking time below minimum", domain.CreateRecipeRequest{
			Name: "Tea", Text: "Steep.", CookingTime: 0, Image: pngDataURI(),
			Ingredients: []domain.IngredientAmount{{ID: f.sugar.ID.String(), Amount: 1}},
		}},
		{"no ingredients", domain.CreateRecipeRequest{
			Name: "Tea", Text: "Steep.", CookingTime: 3, Image: pngDataURI(),
		}},
		{"unknown ingredient", domain.CreateRecipeRequest{
			Name: "Tea", Text: "Steep.", CookingTime: 3, Image: pngDataURI(),
			Ingredients: []domain.IngredientAmount{{ID: uuid.NewString(), Amount: 1}},
		}},
		{"bad image", domain.CreateRecipeRequest{
			Name: "Tea", Text: "Steep.", CookingTime: 3, Image: "data:image/png;base64,!!",
			Ingredients: []domain.IngredientAmount{{ID: f.sugar.ID.String(), Amount: 1}},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.svc.CreateRecipe(f.ctx, tc.req, f.author.ID.String()); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var n int64
			f.db.Model(&entities.Recipe{}).Count(&n)
			if n != 0 {
				t.Fatalf("expected no recipes, got %d", n)
			}
			if f.store.Len() != 0 {
				t.Fatalf("expected no stored images, got %d", f.store.Len())
			}
		})
	}
}

func TestUpdateRecipe(t *testing.T) {
	f := newFixture(t)
	created := f.create(t)
	oldImage := created.Image

	name := "Crepes"
	ingredients := []domain.IngredientAmount{{ID: f.egg.ID.String(), Amount: 3}}
	image := pngDataURI()
	updated, err := f.svc.UpdateRecipe(f.ctx, created.ID, domain.UpdateRecipeRequest{
		Name:        &name,
		Image:       &image,
		Ingredients: &ingredients,
	}, f.author.ID.String())
	if err != nil {
		t.Fatalf("UpdateRecipe: %v", err)
	}

	if updated.Name != "Crepes" || updated.Text != "Whisk and fry." {
		t.Fatalf("partial update went wrong: %+v", updated)
	}
	if len(updated.Ingredients) != 1 || updated.Ingredients[0].Name != "Egg" {
		t.Fatalf("composition not replaced: %+v", updated.Ingredients)
	}
	if !updated.PublishedAt.Equal(created.PublishedAt) {
		t.Fatalf("published_at changed from %v to %v", created.PublishedAt, updated.PublishedAt)
	}
	if f.store.Has(oldImage) || !f.store.Has(updated.Image) {
		t.Fatal("old image should be replaced by the new one")
	}
}

func TestUpdateRecipeKeepsCompositionOnInvalidIngredients(t *testing.T) {
	f := newFixture(t)
	created := f.create(t)

	name := "Renamed"
	dup := []domain.IngredientAmount{
		{ID: f.egg.ID.String(), Amount: 1},
		{ID: f.egg.ID.String(), Amount: 2},
	}
	_, err := f.svc.UpdateRecipe(f.ctx, created.ID, domain.UpdateRecipeRequest{Name: &name, Ingredients: &dup}, f.author.ID.String())
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	got, err := f.svc.GetRecipeDetail(f.ctx, created.ID, "")
	if err != nil {
		t.Fatalf("GetRecipeDetail: %v", err)
	}
	if got.Name != "Pancakes" || len(got.Ingredients) != 2 {
		t.Fatalf("recipe changed after failed update: %+v", got)
	}
}

func TestOnlyAuthorMayChangeRecipe(t *testing.T) {
	f := newFixture(t)
	created := f.create(t)
	name := "Stolen"

	if _, err := f.svc.UpdateRecipe(f.ctx, created.ID, domain.UpdateRecipeRequest{Name: &name}, f.viewer.ID.String()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("update by stranger: expected forbidden, got %v", err)
	}
	if err := f.svc.DeleteRecipe(f.ctx, created.ID, f.viewer.ID.String()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("delete by stranger: expected forbidden, got %v", err)
	}
	if err := f.svc.DeleteRecipe(f.ctx, uuid.NewString(), f.author.ID.String()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("delete missing: expected not found, got %v", err)
	}
}

func TestDeleteRecipeCascades(t *testing.T) {
	f := newFixture(t)
	created := f.create(t)

	if _, err := f.svc.AddFavorite(f.ctx, f.viewer.ID.String(), created.ID); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}
	if _, err := f.svc.AddToShoppingCart(f.ctx, f.viewer.ID.String(), created.ID); err != nil {
		t.Fatalf("AddToShoppingCart: %v", err)
	}

	if err := f.svc.DeleteRecipe(f.ctx, created.ID, f.author.ID.String()); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}

	for _, model := range []any{&entities.Recipe{}, &entities.RecipeIngredient{}, &entities.FavoriteRecipe{}, &entities.ShoppingCartItem{}} {
		var n int64
		if err := f.db.Model(model).Count(&n).Error; err != nil {
			t.Fatalf("count %T: %v", model, err)
		}
		if n != 0 {
			t.Fatalf("expected %T rows to be gone, got %d", model, n)
		}
	}
	if f.store.Len() != 0 {
		t.Fatal("image should be removed with the recipe")
	}
}

func TestGetRecipesFiltersAndFlags(t *testing.T) {
	f := newFixture(t)
	first := f.create(t)
	second := f.create(t)
	other := testutil.CreateRecipe(t, f.db, f.viewer, "Toast", testutil.Portion{Ingredient: f.egg, Amount: 1})

	if _, err := f.svc.AddFavorite(f.ctx, f.viewer.ID.String(), first.ID); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}
	if _, err := f.svc.AddToShoppingCart(f.ctx, f.viewer.ID.String(), second.ID); err != nil {
		t.Fatalf("AddToShoppingCart: %v", err)
	}
	if err := follow.NewFollowRepository(f.db).CreateFollow(f.ctx, f.viewer.ID, f.author.ID); err != nil {
		t.Fatalf("CreateFollow: %v", err)
	}

	viewer := f.viewer.ID.String()
	all, err := f.svc.GetRecipes(f.ctx, domain.RecipeFilter{}, viewer)
	if err != nil {
		t.Fatalf("GetRecipes: %v", err)
	}
	if all.Count != 3 || len(all.Results) != 3 {
		t.Fatalf("expected 3 recipes, got %+v", all)
	}
	for _, r := range all.Results {
		switch r.ID {
		case first.ID:
			if !r.IsFavorited || r.IsInShoppingCart || !r.Author.IsSubscribed {
				t.Fatalf("unexpected flags on first: %+v", r)
			}
		case second.ID:
			if r.IsFavorited || !r.IsInShoppingCart {
				t.Fatalf("unexpected flags on second: %+v", r)
			}
		case other.ID.String():
			if r.Author.IsSubscribed {
				t.Fatal("viewer does not follow themselves")
			}
		}
	}

	tests := []struct {
		name   string
		filter domain.RecipeFilter
		viewer string
		want   []string
	}{
		{"favorited", domain.RecipeFilter{IsFavorited: true}, viewer, []string{first.ID}},
		{"in cart", domain.RecipeFilter{IsInShoppingCart: true}, viewer, []string{second.ID}},
		{"by author", domain.RecipeFilter{AuthorID: f.viewer.ID.String()}, "", []string{other.ID.String()}},
		{"bad author", domain.RecipeFilter{AuthorID: "someone"}, "", nil},
		{"anonymous ignores favorites", domain.RecipeFilter{IsFavorited: true}, "", []string{first.ID, second.ID, other.ID.String()}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page, err := f.svc.GetRecipes(f.ctx, tc.filter, tc.viewer)
			if err != nil {
				t.Fatalf("GetRecipes: %v", err)
			}
			if len(page.Results) != len(tc.want) {
				t.Fatalf("expected %d results, got %d", len(tc.want), len(page.Results))
			}
			ids := map[string]bool{}
			for _, r := range page.Results {
				ids[r.ID] = true
				if tc.viewer == "" && (r.IsFavorited || r.IsInShoppingCart) {
					t.Fatalf("anonymous viewer sees flags: %+v", r)
				}
			}
			for _, id := range tc.want {
				if !ids[id] {
					t.Fatalf("missing recipe %s in %v", id, ids)
				}
			}
		})
	}
}

func TestGetRecipesPagination(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 8; i++ {
		testutil.CreateRecipe(t, f.db, f.author, "Dish")
	}

	page, err := f.svc.GetRecipes(f.ctx, domain.RecipeFilter{}, "")
	if err != nil {
		t.Fatalf("GetRecipes: %v", err)
	}
	if page.Count != 8 || len(page.Results) != domain.DefaultPageSize || page.TotalPages != 2 || page.Next == nil || *page.Next != 2 {
		t.Fatalf("unexpected first page %+v", page)
	}

	last, err := f.svc.GetRecipes(f.ctx, domain.RecipeFilter{PageRequest: domain.PageRequest{Page: 2}}, "")
	if err != nil {
		t.Fatalf("GetRecipes: %v", err)
	}
	if len(last.Results) != 2 || last.Next != nil || last.Previous == nil {
		t.Fatalf("unexpected last page %+v", last)
	}
}

func TestShortLinkRoundTrip(t *testing.T) {
	f := newFixture(t)
	created := f.create(t)

	link, err := f.svc.GetShortLink(f.ctx, created.ID)
	if err != nil {
		t.Fatalf("GetShortLink: %v", err)
	}
	prefix := "http://foodgram.test/s/"
	if !strings.HasPrefix(link.ShortLink, prefix) {
		t.Fatalf("unexpected short link %q", link.ShortLink)
	}
	code := strings.TrimPrefix(link.ShortLink, prefix)
	if len(code) != 8 {
		t.Fatalf("expected an 8 character code, got %q", code)
	}

	id, err := f.svc.ResolveShortLink(f.ctx, code)
	if err != nil {
		t.Fatalf("ResolveShortLink: %v", err)
	}
	if id != created.ID {
		t.Fatalf("short link resolved to %s, want %s", id, created.ID)
	}

	for _, bad := range []string{"zzzzzzzz", "abc", "00000000"} {
		if _, err := f.svc.ResolveShortLink(f.ctx, bad); !errors.Is(err, domain.ErrNotFound) && bad != created.ID[:8] {
			t.Fatalf("ResolveShortLink(%q): expected not found, got %v", bad, err)
		}
	}

	if _, err := f.svc.GetShortLink(f.ctx, uuid.NewString()); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("GetShortLink on missing recipe: expected not found, got %v", err)
	}
}
