package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/passai/passai-be/internal/delivery/http/domain"
	"github.com/passai/passai-be/internal/delivery/http/entity"
	"github.com/passai/passai-be/internal/delivery/http/usecase"
	"github.com/passai/passai-be/internal/pkg/response"
	"github.com/passai/passai-be/internal/pkg/validate"
)

type (
	QuizHandler interface {
		Generate(ctx *fiber.Ctx) error
		Get(ctx *fiber.Ctx) error
		List(ctx *fiber.Ctx) error
		SubmitAttempt(ctx *fiber.Ctx) error
	}

	quizHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.QuizUsecase
	}
)

func NewQuizHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.QuizUsecase) QuizHandler {
	return &quizHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /quizzes/generate
func (h *quizHandler) Generate(ctx *fiber.Ctx) error {
	var req entity.GenerateQuizRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.QUIZ_GENERATE_FAILED, err, h.logger).Send(ctx)
	}

	result, err := h.usecase.GenerateQuiz(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.QUIZ_GENERATE_FAILED, err, h.logger).Send(ctx)
	}

	msg := domain.QUIZ_GENERATE_SUCCESS
	if result.UsedFallback {
		msg = domain.QUIZ_GENERATE_FALLBACK
	}
	return response.NewSuccess(msg, result, nil).Send(ctx)
}

// GET /quizzes/:quiz_id
func (h *quizHandler) Get(ctx *fiber.Ctx) error {
	quizID := ctx.Params("quiz_id")
	if quizID == "" {
		return response.NewFailed(domain.QUIZ_GET_FAILED, fiber.NewError(fiber.StatusBadRequest, "quiz_id is required"), h.logger).Send(ctx)
	}

	quiz, err := h.usecase.GetQuiz(ctx.UserContext(), quizID)
	if err != nil {
		return response.NewFailed(domain.QUIZ_GET_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.QUIZ_GET_SUCCESS, quiz, nil).Send(ctx)
}

// GET /quizzes?subject=...
func (h *quizHandler) List(ctx *fiber.Ctx) error {
	subject := strings.TrimSpace(ctx.Query("subject"))
	if subject == "" {
		return response.NewFailed(domain.QUIZ_GET_FAILED, fiber.NewError(fiber.StatusBadRequest, "subject is required"), h.logger).Send(ctx)
	}

	quizzes, err := h.usecase.ListQuizzes(ctx.UserContext(), subject)
	if err != nil {
		return response.NewFailed(domain.QUIZ_GET_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.QUIZ_GET_SUCCESS, quizzes, nil).Send(ctx)
}

// POST /quizzes/:quiz_id/attempts
func (h *quizHandler) SubmitAttempt(ctx *fiber.Ctx) error {
	quizID := ctx.Params("quiz_id")
	if quizID == "" {
		return response.NewFailed(domain.QUIZ_ATTEMPT_FAILED, fiber.NewError(fiber.StatusBadRequest, "quiz_id is required"), h.logger).Send(ctx)
	}

	var req entity.SubmitAttemptRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.QUIZ_ATTEMPT_FAILED, err, h.logger).Send(ctx)
	}

	result, err := h.usecase.SubmitAttempt(ctx.UserContext(), quizID, req)
	if err != nil {
		return response.NewFailed(domain.QUIZ_ATTEMPT_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.QUIZ_ATTEMPT_SUCCESS, result, nil).Send(ctx)
}
