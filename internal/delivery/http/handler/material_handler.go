package handler

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/passai/passai-be/internal/delivery/http/domain"
	"github.com/passai/passai-be/internal/delivery/http/usecase"
	"github.com/passai/passai-be/internal/pkg/response"
	"github.com/passai/passai-be/internal/pkg/validate"
)

type (
	MaterialHandler interface {
		Upload(ctx *fiber.Ctx) error
		Get(ctx *fiber.Ctx) error
		List(ctx *fiber.Ctx) error
		Delete(ctx *fiber.Ctx) error
	}

	materialHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.MaterialUsecase
	}
)

func NewMaterialHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.MaterialUsecase) MaterialHandler {
	return &materialHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /materials/upload (multipart: subject + files[])
func (h *materialHandler) Upload(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return response.NewFailed(domain.MATERIAL_UPLOAD_FAILED, fiber.NewError(fiber.StatusBadRequest, "expected multipart form data"), h.logger).Send(ctx)
	}

	subject := strings.TrimSpace(ctx.FormValue("subject"))
	if subject == "" {
		return response.NewFailed(domain.MATERIAL_UPLOAD_FAILED, fiber.NewError(fiber.StatusBadRequest, "subject is required"), h.logger).Send(ctx)
	}

	headers := form.File["files"]
	files := make([]usecase.UploadFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return response.NewFailed(domain.MATERIAL_UPLOAD_FAILED, err, h.logger).Send(ctx)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return response.NewFailed(domain.MATERIAL_UPLOAD_FAILED, err, h.logger).Send(ctx)
		}
		files = append(files, usecase.UploadFile{
			Filename: header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Content:  content,
		})
	}

	result, err := h.usecase.Upload(ctx.UserContext(), subject, files)
	if err != nil {
		return response.NewFailed(domain.MATERIAL_UPLOAD_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.MATERIAL_UPLOAD_SUCCESS, result, nil).Send(ctx)
}

// GET /materials/:material_id
func (h *materialHandler) Get(ctx *fiber.Ctx) error {
	materialID := ctx.Params("material_id")
	if materialID == "" {
		return response.NewFailed(domain.MATERIAL_GET_FAILED, fiber.NewError(fiber.StatusBadRequest, "material_id is required"), h.logger).Send(ctx)
	}

	material, err := h.usecase.GetMaterial(ctx.UserContext(), materialID)
	if err != nil {
		return response.NewFailed(domain.MATERIAL_GET_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.MATERIAL_GET_SUCCESS, material, nil).Send(ctx)
}

// GET /materials?subject=...
func (h *materialHandler) List(ctx *fiber.Ctx) error {
	subject := strings.TrimSpace(ctx.Query("subject"))

	materials, err := h.usecase.ListMaterials(ctx.UserContext(), subject)
	if err != nil {
		return response.NewFailed(domain.MATERIAL_GET_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.MATERIAL_GET_SUCCESS, materials, nil).Send(ctx)
}

// DELETE /materials/:material_id
func (h *materialHandler) Delete(ctx *fiber.Ctx) error {
	materialID := ctx.Params("material_id")
	if materialID == "" {
		return response.NewFailed(domain.MATERIAL_GET_FAILED, fiber.NewError(fiber.StatusBadRequest, "material_id is required"), h.logger).Send(ctx)
	}

	if err := h.usecase.DeleteMaterial(ctx.UserContext(), materialID); err != nil {
		return response.NewFailed(domain.MATERIAL_GET_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.MATERIAL_GET_SUCCESS, nil, nil).Send(ctx)
}
