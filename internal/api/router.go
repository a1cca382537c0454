package api

import (
	"spendpause/docs"
	"spendpause/internal/api/handlers"
	"spendpause/pkg/auth"
	"spendpause/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	analysisHandler *handlers.AnalysisHandler,
	coolDownHandler *handlers.CoolDownHandler,
	profileHandler *handlers.ProfileHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Importing docs registers the swagger spec via init().
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	protected.Post("/analysis", analysisHandler.Analyze)

	coolDowns := protected.Group("/cooldowns")
	coolDowns.Post("", coolDownHandler.Start)
	coolDowns.Get("/check", coolDownHandler.Check)
	coolDowns.Get("/active", coolDownHandler.ListActive)
	coolDowns.Get("/expired", coolDownHandler.ListExpired)
	coolDowns.Post("/:id/cancel", coolDownHandler.Cancel)

	protected.Get("/profile", profileHandler.Get)
	protected.Patch("/profile", profileHandler.Update)

	return app
}
