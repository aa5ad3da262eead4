package middleware

import (
	"strings"

	"Go-Recipe-Hub/domain"
	"Go-Recipe-Hub/internal/api/presenters"
	"Go-Recipe-Hub/pkg/jwt"
	"Go-Recipe-Hub/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

// LocalUserID is the fiber local holding the acting user id as uint.
const LocalUserID = "user_id"

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler
	}

	middleware struct {
		userService user.UserService
		logger      *zap.Logger
	}
)

func NewMiddleware(userService user.UserService, logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &middleware{userService: userService, logger: logger}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

// resolve turns a bearer token into the acting user id, falling back to the session email.
func (m *middleware) resolve(c *fiber.Ctx, jwtService jwt.JWTService, token string) (uint, error) {
	userID, email, err := jwtService.GetUserByToken(token)
	if err != nil {
		return 0, err
	}
	return m.userService.ResolveActor(c.Context(), userID, email)
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenNotFound)
		}

		userID, err := m.resolve(c, jwtService, token)
		if err != nil {
			m.logger.Debug("authentication rejected", zap.String("path", c.Path()), zap.Error(err))
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

// OptionalAuthMiddleware identifies the viewer when a valid token is sent and lets anonymous requests through.
func (m *middleware) OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Next()
		}
		userID, err := m.resolve(c, jwtService, token)
		if err != nil {
			m.logger.Debug("optional authentication ignored", zap.String("path", c.Path()), zap.Error(err))
			return c.Next()
		}
		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

// UserID returns the acting user id, or 0 for anonymous requests.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalUserID).(uint)
	return id
}
