package recipe

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/metrics"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/follow"
	"foodgram/pkg/projection"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	imageFolder     = "recipes"
	shortCodeLength = 8
)

var shortCodePattern = regexp.MustCompile(`^[0-9a-f]{8}$`)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID string) (domain.Recipe, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, actorID string) (domain.Recipe, error)
		DeleteRecipe(ctx context.Context, recipeID string, actorID string) error
		GetRecipeDetail(ctx context.Context, recipeID string, viewerID string) (domain.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) (domain.Page[domain.Recipe], error)
		GetShortLink(ctx context.Context, recipeID string) (domain.ShortLinkResponse, error)
		ResolveShortLink(ctx context.Context, code string) (string, error)

		AddFavorite(ctx context.Context, userID, recipeID string) (domain.RecipeMinified, error)
		RemoveFavorite(ctx context.Context, userID, recipeID string) error
		AddToShoppingCart(ctx context.Context, userID, recipeID string) (domain.RecipeMinified, error)
		RemoveFromShoppingCart(ctx context.Context, userID, recipeID string) error
	}

	Limits struct {
		MinCookingTime      int
		MinIngredientAmount int
	}

	recipeService struct {
		recipeRepository RecipeRepository
		followRepository follow.FollowRepository
		storage          storage.ImageStorage
		composition      *CompositionManager
		favorites        *RelationToggle
		shoppingCart     *RelationToggle
		limits           Limits
		baseURL          string
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	followRepository follow.FollowRepository,
	imageStorage storage.ImageStorage,
	limits Limits,
	baseURL string,
) RecipeService {
	if limits.MinCookingTime < 1 {
		limits.MinCookingTime = 1
	}
	return &recipeService{
		recipeRepository: recipeRepository,
		followRepository: followRepository,
		storage:          imageStorage,
		composition:      NewCompositionManager(limits.MinIngredientAmount),
		favorites:        NewRelationToggle(recipeRepository, Favorites),
		shoppingCart:     NewRelationToggle(recipeRepository, ShoppingCart),
		limits:           limits,
		baseURL:          strings.TrimRight(baseURL, "/"),
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID string) (domain.Recipe, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.Recipe{}, domain.ErrParseUUID
	}
	if err := s.checkCookingTime(req.CookingTime); err != nil {
		return domain.Recipe{}, err
	}
	if _, err := s.composition.Validate(req.Ingredients); err != nil {
		return domain.Recipe{}, err
	}

	imageURL, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe := &entities.Recipe{
		AuthorID:    authorUUID,
		Name:        strings.TrimSpace(req.Name),
		Text:        req.Text,
		ImageURL:    imageURL,
		CookingTime: req.CookingTime,
	}

	err = s.recipeRepository.Transaction(ctx, func(repo RecipeRepository) error {
		if err := repo.CreateRecipe(ctx, recipe); err != nil {
			return err
		}
		return s.composition.Set(ctx, repo, recipe.ID, req.Ingredients)
	})
	if err != nil {
		s.discardImage(ctx, imageURL)
		return domain.Recipe{}, err
	}

	metrics.RecipesWritten.WithLabelValues("create").Inc()
	return s.GetRecipeDetail(ctx, recipe.ID.String(), authorID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, actorID string) (domain.Recipe, error) {
	recipe, err := s.authorOnly(ctx, recipeID, actorID)
	if err != nil {
		return domain.Recipe{}, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Text != nil {
		fields["text"] = *req.Text
	}
	if req.CookingTime != nil {
		if err := s.checkCookingTime(*req.CookingTime); err != nil {
			return domain.Recipe{}, err
		}
		fields["cooking_time"] = *req.CookingTime
	}
	if req.Ingredients != nil {
		if _, err := s.composition.Validate(*req.Ingredients); err != nil {
			return domain.Recipe{}, err
		}
	}

	var newImageURL string
	if req.Image != nil && *req.Image != "" {
		newImageURL, err = s.uploadImage(ctx, *req.Image)
		if err != nil {
			return domain.Recipe{}, err
		}
		fields["image_url"] = newImageURL
	}

	err = s.recipeRepository.Transaction(ctx, func(repo RecipeRepository) error {
		if err := repo.UpdateRecipe(ctx, recipe.ID, fields); err != nil {
			return err
		}
		if req.Ingredients != nil {
			return s.composition.Set(ctx, repo, recipe.ID, *req.Ingredients)
		}
		return nil
	})
	if err != nil {
		s.discardImage(ctx, newImageURL)
		return domain.Recipe{}, err
	}
	if newImageURL != "" {
		s.discardImage(ctx, recipe.ImageURL)
	}

	metrics.RecipesWritten.WithLabelValues("update").Inc()
	return s.GetRecipeDetail(ctx, recipe.ID.String(), actorID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, actorID string) error {
	recipe, err := s.authorOnly(ctx, recipeID, actorID)
	if err != nil {
		return err
	}

	if err := s.recipeRepository.Transaction(ctx, func(repo RecipeRepository) error {
		return repo.DeleteRecipe(ctx, recipe.ID)
	}); err != nil {
		return err
	}

	s.discardImage(ctx, recipe.ImageURL)
	metrics.RecipesWritten.WithLabelValues("delete").Inc()
	return nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, viewerID string) (domain.Recipe, error) {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return domain.Recipe{}, err
	}

	res, err := s.assemble(ctx, []*entities.Recipe{recipe}, viewerID)
	if err != nil {
		return domain.Recipe{}, err
	}
	return res[0], nil
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) (domain.Page[domain.Recipe], error) {
	filter.PageRequest = filter.PageRequest.Normalize()
	if filter.AuthorID != "" {
		if _, err := uuid.Parse(filter.AuthorID); err != nil {
			return domain.NewPage[domain.Recipe](nil, 0, filter.PageRequest), nil
		}
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, viewerID)
	if err != nil {
		return domain.Page[domain.Recipe]{}, err
	}

	res, err := s.assemble(ctx, recipes, viewerID)
	if err != nil {
		return domain.Page[domain.Recipe]{}, err
	}
	return domain.NewPage(res, count, filter.PageRequest), nil
}

func (s *recipeService) GetShortLink(ctx context.Context, recipeID string) (domain.ShortLinkResponse, error) {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return domain.ShortLinkResponse{}, err
	}
	return domain.ShortLinkResponse{
		ShortLink: s.baseURL + "/s/" + recipe.ID.String()[:shortCodeLength],
	}, nil
}

// ResolveShortLink returns the id of the recipe a short code points at.
func (s *recipeService) ResolveShortLink(ctx context.Context, code string) (string, error) {
	code = strings.ToLower(code)
	if !shortCodePattern.MatchString(code) {
		return "", domain.ErrShortLinkNotFound
	}
	recipe, err := s.recipeRepository.GetRecipeByShortCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrShortLinkNotFound
		}
		return "", err
	}
	return recipe.ID.String(), nil
}

func (s *recipeService) AddFavorite(ctx context.Context, userID, recipeID string) (domain.RecipeMinified, error) {
	return s.favorites.Add(ctx, userID, recipeID)
}

func (s *recipeService) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	return s.favorites.Remove(ctx, userID, recipeID)
}

func (s *recipeService) AddToShoppingCart(ctx context.Context, userID, recipeID string) (domain.RecipeMinified, error) {
	return s.shoppingCart.Add(ctx, userID, recipeID)
}

func (s *recipeService) RemoveFromShoppingCart(ctx context.Context, userID, recipeID string) error {
	return s.shoppingCart.Remove(ctx, userID, recipeID)
}

func (s *recipeService) findRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return nil, domain.ErrRecipeNotFound
	}
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) authorOnly(ctx context.Context, recipeID, actorID string) (*entities.Recipe, error) {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID.String() != actorID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}
	return recipe, nil
}

func (s *recipeService) checkCookingTime(minutes int) error {
	if minutes < s.limits.MinCookingTime {
		return domain.Validationf("cooking time must be at least %d minutes", s.limits.MinCookingTime)
	}
	return nil
}

func (s *recipeService) uploadImage(ctx context.Context, raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	img, err := storage.DecodeBase64Image(raw)
	if err != nil {
		return "", err
	}
	return s.storage.Upload(ctx, imageFolder, img)
}

func (s *recipeService) discardImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.storage.Delete(ctx, url); err != nil {
		log.Warnf("failed to delete image %s: %v", url, err)
	}
}

// assemble builds full representations for recipes with batched lookups of
// compositions and viewer-relative flags.
func (s *recipeService) assemble(ctx context.Context, recipes []*entities.Recipe, viewerID string) ([]domain.Recipe, error) {
	ids := make([]uuid.UUID, 0, len(recipes))
	authorIDs := make([]uuid.UUID, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
		authorIDs = append(authorIDs, r.AuthorID)
	}

	compositions, err := s.recipeRepository.GetCompositions(ctx, ids)
	if err != nil {
		return nil, err
	}

	favorited := map[uuid.UUID]bool{}
	inCart := map[uuid.UUID]bool{}
	followed := map[uuid.UUID]bool{}
	if viewer, err := uuid.Parse(viewerID); err == nil {
		if favorited, err = s.recipeRepository.RelatedRecipeIDs(ctx, Favorites, viewer, ids); err != nil {
			return nil, err
		}
		if inCart, err = s.recipeRepository.RelatedRecipeIDs(ctx, ShoppingCart, viewer, ids); err != nil {
			return nil, err
		}
		if followed, err = s.followRepository.FollowedAmong(ctx, viewer, authorIDs); err != nil {
			return nil, err
		}
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		result = append(result, projection.ToRecipe(r, toRecipeIngredients(compositions[r.ID]), projection.RecipeFlags{
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			AuthorFollowed:   followed[r.AuthorID],
		}))
	}
	return result, nil
}
