package config

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/passai/passai-be/internal/delivery/http/handler"
	"github.com/passai/passai-be/internal/delivery/http/middleware"
	"github.com/passai/passai-be/internal/delivery/http/repository"
	"github.com/passai/passai-be/internal/delivery/http/route"
	"github.com/passai/passai-be/internal/delivery/http/usecase"
	"github.com/passai/passai-be/internal/extractor"
	"github.com/passai/passai-be/internal/pkg/llm"
	"github.com/passai/passai-be/internal/pkg/validate"
)

type BootstrapConfig struct {
	Api       *fiber.App
	Config    *viper.Viper
	DB        *gorm.DB
	Log       *logrus.Logger
	Validator *validate.Validator
}

func Bootstrap(config *BootstrapConfig) {

	mid := middleware.NewMiddleware(&middleware.MiddlewareConfig{
		Log:    config.Log,
		Config: config.Config,
	})

	apiKey := ""
	model := ""
	baseURL := ""
	ocrLang := ""
	if config.Config != nil {
		apiKey = config.Config.GetString("llm.openai.api_key")
		model = config.Config.GetString("llm.openai.model")
		baseURL = config.Config.GetString("llm.openai.base_url")
		ocrLang = config.Config.GetString("ocr.lang")
	}

	client := llm.NewClient(apiKey, model, baseURL)

	var ocr *extractor.OCR
	if extractor.Available() {
		ocr = extractor.NewOCR(ocrLang)
	} else {
		config.Log.Warn("tesseract not found in PATH, image uploads will fail extraction")
	}
	dispatcher := extractor.NewDispatcher(ocr)

	materialRepo := repository.NewMaterialRepository(config.DB)
	quizRepo := repository.NewQuizRepository(config.DB)
	studyPlanRepo := repository.NewStudyPlanRepository(config.DB)

	materialUsecase := usecase.NewMaterialUsecase(usecase.MaterialConfig{
		DB:         config.DB,
		Dispatcher: dispatcher,
		Repository: materialRepo,
		Log:        config.Log,
	})
	quizUsecase := usecase.NewQuizUsecase(usecase.QuizConfig{
		DB:           config.DB,
		Generator:    client,
		Repository:   quizRepo,
		MaterialRepo: materialRepo,
		Log:          config.Log,
		Config:       config.Config,
	})
	studyPlanUsecase := usecase.NewStudyPlanUsecase(usecase.StudyPlanConfig{
		DB:         config.DB,
		Generator:  client,
		Repository: studyPlanRepo,
		QuizRepo:   quizRepo,
		Log:        config.Log,
		Config:     config.Config,
	})

	materialHandler := handler.NewMaterialHandler(config.Validator, config.Log, materialUsecase)
	quizHandler := handler.NewQuizHandler(config.Validator, config.Log, quizUsecase)
	studyPlanHandler := handler.NewStudyPlanHandler(config.Validator, config.Log, studyPlanUsecase)

	route.Setup(&route.RouteConfig{
		Api:              config.Api,
		Middleware:       mid,
		MaterialHandler:  materialHandler,
		QuizHandler:      quizHandler,
		StudyPlanHandler: studyPlanHandler,
	})

}
