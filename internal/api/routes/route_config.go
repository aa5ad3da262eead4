package routes

import (
	"Go-Recipe-Hub/domain"
	"Go-Recipe-Hub/internal/api/handlers"
	"Go-Recipe-Hub/internal/middleware"
	"Go-Recipe-Hub/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	RecipeHandler handlers.RecipeHandler
	SocialHandler handlers.SocialHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Recipes()
	c.Social()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": domain.MessageSuccessPing})
	})
}

func (c *Config) Recipes() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	recipes := c.App.Group("/api/v1/recipes")
	{
		recipes.Get("", optional, c.RecipeHandler.GetFeed)
		recipes.Get("/:id", optional, c.RecipeHandler.GetRecipeDetail)
		recipes.Post("", auth, c.RecipeHandler.CreateRecipe)
		recipes.Put("/:id", auth, c.RecipeHandler.EditRecipe)
		recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)

		recipes.Post("/:id/like", auth, c.SocialHandler.ToggleLike)
		recipes.Post("/:id/save", auth, c.SocialHandler.ToggleSave)
		recipes.Post("/:id/share", auth, c.SocialHandler.ShareRecipe)
		recipes.Post("/:id/report", auth, c.SocialHandler.ReportRecipe)
		recipes.Post("/:id/comments", auth, c.SocialHandler.AddComment)
	}
}

func (c *Config) Social() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	c.App.Delete("/api/v1/comments/:id", auth, c.SocialHandler.DeleteComment)
	c.App.Post("/api/v1/users/:id/follow", auth, c.SocialHandler.ToggleFollow)
	c.App.Get("/api/v1/notebook", auth, c.SocialHandler.GetNotebook)
}
