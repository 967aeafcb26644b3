package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/passai/passai-be/internal/delivery/http/handler"
	"github.com/passai/passai-be/internal/delivery/http/middleware"
)

type RouteConfig struct {
	Api              *fiber.App
	Middleware       *middleware.Middleware
	MaterialHandler  handler.MaterialHandler
	QuizHandler      handler.QuizHandler
	StudyPlanHandler handler.StudyPlanHandler
}

func Setup(c *RouteConfig) {
	c.Api.Use(recover.New())
	c.Api.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path}\n",
	}))
	c.Api.Use(c.Middleware.CorsMiddleware())

	SetupMaterialRoute(c.Api, c.MaterialHandler, c.Middleware)
	SetupQuizRoute(c.Api, c.QuizHandler, c.Middleware)
	SetupStudyPlanRoute(c.Api, c.StudyPlanHandler, c.Middleware)
}
