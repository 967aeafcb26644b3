package route

import (
	"github.com/gofiber/fiber/v2"

	"github.com/passai/passai-be/internal/delivery/http/handler"
	"github.com/passai/passai-be/internal/delivery/http/middleware"
)

func SetupMaterialRoute(api *fiber.App, handler handler.MaterialHandler, m *middleware.Middleware) {
	router := api.Group("/materials")
	{
		router.Post("/upload", handler.Upload)
		router.Get("/", handler.List)
		router.Get("/:material_id", handler.Get)
		router.Delete("/:material_id", handler.Delete)
	}
}
