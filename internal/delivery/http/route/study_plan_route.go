package route

import (
	"github.com/gofiber/fiber/v2"

	"github.com/passai/passai-be/internal/delivery/http/handler"
	"github.com/passai/passai-be/internal/delivery/http/middleware"
)

func SetupStudyPlanRoute(api *fiber.App, handler handler.StudyPlanHandler, m *middleware.Middleware) {
	router := api.Group("/study-plans")
	{
		router.Post("/generate", handler.Generate)
		router.Get("/", handler.List)
		router.Get("/active", handler.GetActive)
		router.Get("/analysis", handler.GetAnalysis)
		router.Get("/:plan_id", handler.Get)
		router.Patch("/tasks/:task_id", handler.UpdateTaskStatus)
	}
}
