package config

import (
	"fmt"
	"os"
	"time"

	"Go-Recipe-Hub/internal/api/handlers"
	"Go-Recipe-Hub/internal/api/routes"
	"Go-Recipe-Hub/internal/middleware"
	"Go-Recipe-Hub/internal/utils"
	"Go-Recipe-Hub/internal/utils/mailing"
	"Go-Recipe-Hub/internal/utils/storage"
	"Go-Recipe-Hub/pkg/jwt"
	"Go-Recipe-Hub/pkg/recipe"
	"Go-Recipe-Hub/pkg/social"
	"Go-Recipe-Hub/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// bodyLimit admits one 50MB main media plus step media in a single form.
const bodyLimit = 200 << 20

type Dependencies struct {
	DB       *gorm.DB
	Storage  storage.AwsS3
	Notifier social.ReportNotifier
	JWT      jwt.JWTService
	Logger   *zap.Logger
}

func NewApp(db *gorm.DB, log *zap.Logger) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         bodyLimit,
	})

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("open request log: %w", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Ho_Chi_Minh",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3, err := storage.NewAwsS3()
	if err != nil {
		return nil, err
	}

	Register(app, Dependencies{
		DB:       db,
		Storage:  s3,
		Notifier: mailing.NewReportMailer(),
		JWT:      jwt.NewJWTService(utils.GetConfig("JWT_SECRET")),
		Logger:   log,
	})
	return app, nil
}

// Register wires repositories, services and handlers onto app.
func Register(app *fiber.App, deps Dependencies) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	// Repository
	userRepository := user.NewUserRepository(deps.DB)
	recipeRepository := recipe.NewRecipeRepository(deps.DB)
	socialRepository := social.NewSocialRepository(deps.DB)

	// Service
	userService := user.NewUserService(userRepository)
	resolver := recipe.NewResolver(recipeRepository.IngredientTable(), recipeRepository.TypeTable())
	recipeService := recipe.NewRecipeService(
		recipeRepository,
		resolver,
		userRepository,
		socialRepository,
		deps.Storage,
		deps.Logger.Named("recipe"),
	)
	socialService := social.NewSocialService(
		socialRepository,
		recipeRepository,
		userRepository,
		deps.Notifier,
		deps.Logger.Named("social"),
	)

	// Handler
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	socialHandler := handlers.NewSocialHandler(socialService)

	// routes
	routesConfig := routes.Config{
		App:           app,
		RecipeHandler: recipeHandler,
		SocialHandler: socialHandler,
		Middleware:    middleware.NewMiddleware(userService, deps.Logger.Named("auth")),
		JWTService:    deps.JWT,
	}
	routesConfig.Setup()
}
