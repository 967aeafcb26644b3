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
	StudyPlanHandler interface {
		Generate(ctx *fiber.Ctx) error
		Get(ctx *fiber.Ctx) error
		GetActive(ctx *fiber.Ctx) error
		List(ctx *fiber.Ctx) error
		GetAnalysis(ctx *fiber.Ctx) error
		UpdateTaskStatus(ctx *fiber.Ctx) error
	}

	studyPlanHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.StudyPlanUsecase
	}
)

func NewStudyPlanHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.StudyPlanUsecase) StudyPlanHandler {
	return &studyPlanHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /study-plans/generate
func (h *studyPlanHandler) Generate(ctx *fiber.Ctx) error {
	var req entity.GeneratePlanRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.STUDY_PLAN_GENERATE_FAILED, err, h.logger).Send(ctx)
	}

	result, err := h.usecase.CreatePersonalizedStudyPlan(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.STUDY_PLAN_GENERATE_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.STUDY_PLAN_GENERATE_SUCCESS, result, nil).Send(ctx)
}

// GET /study-plans/active?subject=...
func (h *studyPlanHandler) GetActive(ctx *fiber.Ctx) error {
	subject := strings.TrimSpace(ctx.Query("subject"))
	if subject == "" {
		return response.NewFailed(domain.STUDY_PLAN_GET_FAILED, fiber.NewError(fiber.StatusBadRequest, "subject is required"), h.logger).Send(ctx)
	}

	plan, err := h.usecase.GetActivePlan(ctx.UserContext(), subject)
	if err != nil {
		return response.NewFailed(domain.STUDY_PLAN_GET_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.STUDY_PLAN_GET_SUCCESS, plan, nil).Send(ctx)
}

// GET /study-plans
func (h *studyPlanHandler) List(ctx *fiber.Ctx) error {
	plans, err := h.usecase.ListActivePlans(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.STUDY_PLAN_GET_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.STUDY_PLAN_GET_SUCCESS, plans, nil).Send(ctx)
}

// GET /study-plans/:plan_id
func (h *studyPlanHandler) Get(ctx *fiber.Ctx) error {
	plan, err := h.usecase.GetPlan(ctx.UserContext(), ctx.Params("plan_id"))
	if err != nil {
		return response.NewFailed(domain.STUDY_PLAN_GET_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.STUDY_PLAN_GET_SUCCESS, plan, nil).Send(ctx)
}

// PATCH /study-plans/tasks/:task_id
func (h *studyPlanHandler) UpdateTaskStatus(ctx *fiber.Ctx) error {
	var req entity.UpdateTaskStatusRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.STUDY_TASK_UPDATE_FAILED, err, h.logger).Send(ctx)
	}

	if err := h.usecase.UpdateTaskStatus(ctx.UserContext(), ctx.Params("task_id"), req.Status); err != nil {
		return response.NewFailed(domain.STUDY_TASK_UPDATE_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.STUDY_TASK_UPDATE_SUCCESS, nil, nil).Send(ctx)
}

// GET /study-plans/analysis?subject=...
func (h *studyPlanHandler) GetAnalysis(ctx *fiber.Ctx) error {
	subject := strings.TrimSpace(ctx.Query("subject"))
	if subject == "" {
		return response.NewFailed(domain.STUDY_PLAN_ANALYSIS_FAILED, fiber.NewError(fiber.StatusBadRequest, "subject is required"), h.logger).Send(ctx)
	}

	analysis, err := h.usecase.GetAnalysis(ctx.UserContext(), subject)
	if err != nil {
		return response.NewFailed(domain.STUDY_PLAN_ANALYSIS_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.STUDY_PLAN_ANALYSIS_SUCCESS, analysis, nil).Send(ctx)
}
