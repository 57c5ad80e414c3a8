package routes

import (
	"foodgram/internal/api/handlers"
	"foodgram/internal/middleware"
	"foodgram/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	FollowHandler     handlers.FollowHandler
	IngredientHandler handlers.IngredientHandler
	RecipeHandler     handlers.RecipeHandler
	ShoppingHandler   handlers.ShoppingHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
	// MediaRoot is served under /media when images are stored on local disk.
	MediaRoot string
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.MetricsMiddleware())
	c.Auth()
	c.User()
	c.Ingredients()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth/token")
	{
		auth.Post("/login", c.UserHandler.Login)
		auth.Post("/logout", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Logout)
	}
}

func (c *Config) User() {
	user := c.App.Group("/api/users")
	authenticated := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)
	{
		user.Post("", c.UserHandler.Register)
		user.Get("", optional, c.UserHandler.ListUsers)
		user.Get("/me", authenticated, c.UserHandler.Me)
		user.Put("/me/avatar", authenticated, c.UserHandler.UpdateAvatar)
		user.Delete("/me/avatar", authenticated, c.UserHandler.DeleteAvatar)
		user.Post("/set_password", authenticated, c.UserHandler.SetPassword)
		user.Get("/subscriptions", authenticated, c.FollowHandler.GetSubscriptions)
		user.Get("/:id", optional, c.UserHandler.GetUser)
		user.Post("/:id/subscribe", authenticated, c.FollowHandler.Subscribe)
		user.Delete("/:id/subscribe", authenticated, c.FollowHandler.Unsubscribe)
	}
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/ingredients")
	{
		ingredients.Get("", c.IngredientHandler.GetIngredients)
		ingredients.Get("/:id", c.IngredientHandler.GetIngredient)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/recipes")
	authenticated := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)
	{
		recipes.Get("", optional, c.RecipeHandler.GetRecipes)
		recipes.Post("", authenticated, c.RecipeHandler.CreateRecipe)
		recipes.Get("/download_shopping_cart", authenticated, c.ShoppingHandler.DownloadShoppingCart)
		recipes.Post("/download_shopping_cart/email", authenticated, c.ShoppingHandler.EmailShoppingCart)
		recipes.Get("/:id", optional, c.RecipeHandler.GetRecipeDetail)
		recipes.Patch("/:id", authenticated, c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", authenticated, c.RecipeHandler.DeleteRecipe)
		recipes.Get("/:id/get-link", c.RecipeHandler.GetShortLink)
		recipes.Post("/:id/favorite", authenticated, c.RecipeHandler.AddFavorite)
		recipes.Delete("/:id/favorite", authenticated, c.RecipeHandler.RemoveFavorite)
		recipes.Post("/:id/shopping_cart", authenticated, c.RecipeHandler.AddToShoppingCart)
		recipes.Delete("/:id/shopping_cart", authenticated, c.RecipeHandler.RemoveFromShoppingCart)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/s/:code", c.RecipeHandler.RedirectShortLink)
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	if c.MediaRoot != "" {
		c.App.Static("/media", c.MediaRoot)
	}
}
