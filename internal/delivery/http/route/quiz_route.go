package route

import (
	"github.com/gofiber/fiber/v2"

	"github.com/passai/passai-be/internal/delivery/http/handler"
	"github.com/passai/passai-be/internal/delivery/http/middleware"
)

func SetupQuizRoute(api *fiber.App, handler handler.QuizHandler, m *middleware.Middleware) {
	router := api.Group("/quizzes")
	{
		router.Post("/generate", handler.Generate)
		router.Get("/", handler.List)
		router.Get("/:quiz_id", handler.Get)
		router.Post("/:quiz_id/attempts", handler.SubmitAttempt)
	}
}
