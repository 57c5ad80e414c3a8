package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"foodgram/internal/api/handlers"
	"foodgram/internal/api/routes"
	"foodgram/internal/middleware"
	"foodgram/internal/utils"
	"foodgram/internal/utils/mailing"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/follow"
	"foodgram/pkg/ingredient"
	"foodgram/pkg/jwt"
	"foodgram/pkg/recipe"
	"foodgram/pkg/shopping"
	"foodgram/pkg/user"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

const storageTimeout = 30 * time.Second

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName:     "foodgram",
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	app.Use(recover.New())

	// setting up logging and limiter
	logFile := utils.GetConfig("LOG_FILE")
	if err := os.MkdirAll(filepath.Dir(logFile), os.ModePerm); err != nil {
		return nil, fmt.Errorf("creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		logFile,
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT", 20),
		Expiration: 1 * time.Second,
	}))

	// utils
	imageStorage, mediaRoot, err := NewImageStorage(context.Background())
	if err != nil {
		return nil, err
	}
	mailer := mailing.NewMailer(mailing.LoadMailConfig())

	// Repository
	userRepository := user.NewUserRepository(db)
	followRepository := follow.NewFollowRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	shoppingRepository := shopping.NewShoppingRepository(db)

	// Service
	jwtService := NewJWTService()
	userService := user.NewUserService(userRepository, followRepository, jwtService, imageStorage)
	followService := follow.NewFollowService(followRepository)
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, followRepository, imageStorage, recipe.Limits{
		MinCookingTime:      utils.GetConfigInt("RECIPE_MIN_COOKING_TIME", 1),
		MinIngredientAmount: utils.GetConfigInt("INGREDIENT_MIN_AMOUNT", 1),
	}, utils.GetConfig("APP_URL"))
	shoppingService := shopping.NewShoppingService(shoppingRepository, mailer)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	followHandler := handlers.NewFollowHandler(followService)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	shoppingHandler := handlers.NewShoppingHandler(shoppingService)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		FollowHandler:     followHandler,
		IngredientHandler: ingredientHandler,
		RecipeHandler:     recipeHandler,
		ShoppingHandler:   shoppingHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
		MediaRoot:         mediaRoot,
	}
	routesConfig.Setup()
	return app, nil
}

func NewJWTService() jwt.JWTService {
	secret := utils.GetConfig("JWT_SECRET")
	if secret == "" {
		log.Warn("JWT_SECRET is empty, tokens are signed with an empty key")
	}
	ttl := time.Duration(utils.GetConfigInt("JWT_TTL_HOURS", 24)) * time.Hour
	return jwt.NewJWTService(secret, ttl)
}

// NewImageStorage picks the backend named by STORAGE_DRIVER. The second
// return value is the directory to serve under /media, empty unless images
// live on local disk.
func NewImageStorage(ctx context.Context) (storage.ImageStorage, string, error) {
	switch driver := strings.ToLower(utils.GetConfig("STORAGE_DRIVER")); driver {
	case "s3":
		s3, err := storage.NewAwsS3(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("configuring s3 storage: %w", err)
		}
		return storage.NewBreakerStorage(s3, storageTimeout), "", nil
	case "local", "":
		root := utils.GetConfig("MEDIA_ROOT")
		local, err := storage.NewLocalStorage(root, utils.GetConfig("APP_URL"))
		if err != nil {
			return nil, "", fmt.Errorf("configuring local storage: %w", err)
		}
		return local, root, nil
	case "memory":
		return storage.NewMemoryStorage(), "", nil
	default:
		return nil, "", fmt.Errorf("unknown STORAGE_DRIVER %q", driver)
	}
}
