package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/passai/passai-be/internal/delivery/http/entity"
	"github.com/passai/passai-be/internal/delivery/http/repository"
	internalEntity "github.com/passai/passai-be/internal/entity"
	"github.com/passai/passai-be/internal/extractor"
)

// Upload batch limits.
const (
	MaxFilesPerBatch = 10
	MaxFileSize      = 50 * 1024 * 1024
	MaxBatchSize     = 200 * 1024 * 1024
)

// UploadFile is one file of an upload batch as received from the transport
// layer.
type UploadFile struct {
	Filename string
	MimeType string
	Content  []byte
}

type MaterialUsecase interface {
	Upload(ctx context.Context, subject string, files []UploadFile) (*entity.MaterialUploadResponse, error)
	GetMaterial(ctx context.Context, materialID string) (*entity.MaterialDetail, error)
	ListMaterials(ctx context.Context, subject string) ([]entity.MaterialDetail, error)
	DeleteMaterial(ctx context.Context, materialID string) error
}

type MaterialConfig struct {
	DB         *gorm.DB
	Dispatcher *extractor.Dispatcher
	Repository repository.MaterialRepository
	Log        *logrus.Logger
}

type materialUsecase struct {
	cfg MaterialConfig
}

func NewMaterialUsecase(cfg MaterialConfig) MaterialUsecase {
	return &materialUsecase{cfg: cfg}
}

// Upload validates batch limits, then processes files in order. A single
// file failing extraction is recorded in its result and never aborts the
// rest of the batch.
func (u *materialUsecase) Upload(ctx context.Context, subject string, files []UploadFile) (*entity.MaterialUploadResponse, error) {
	if len(files) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No files provided")
	}
	if len(files) > MaxFilesPerBatch {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Too many files: %d (max %d per upload)", len(files), MaxFilesPerBatch))
	}
	total := 0
	for _, f := range files {
		if len(f.Content) > MaxFileSize {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("File %s exceeds the 50MB per-file limit", f.Filename))
		}
		total += len(f.Content)
	}
	if total > MaxBatchSize {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Upload exceeds the 200MB batch limit")
	}

	response := &entity.MaterialUploadResponse{
		Subject: subject,
		Total:   len(files),
		Results: make([]entity.MaterialUploadResult, 0, len(files)),
	}

	for _, f := range files {
		result := u.processFile(subject, f)
		if result.Status == "failed" {
			response.Failed++
		} else {
			response.Processed++
		}
		response.Results = append(response.Results, result)
	}

	return response, nil
}

func (u *materialUsecase) processFile(subject string, f UploadFile) entity.MaterialUploadResult {
	materialID := "material-" + uuid.NewString()
	record := &internalEntity.Material{
		MaterialID: materialID,
		Subject:    subject,
		Filename:   f.Filename,
		MimeType:   f.MimeType,
		SizeBytes:  int64(len(f.Content)),
	}

	extraction, err := u.cfg.Dispatcher.Extract(f.Filename, f.MimeType, f.Content, extractor.Options{
		Progress: func(percent float64) {
			u.cfg.Log.WithFields(logrus.Fields{"file": f.Filename, "percent": percent}).Debug("extraction progress")
		},
	})

	switch {
	case err == nil:
		record.SourceFormat = string(extraction.Format)
		record.ExtractedText = extraction.Text
		record.PageCount = extraction.PageCount
		record.SlideCount = extraction.SlideCount
		record.OCRConfidence = extraction.Confidence
		if extraction.Meta != nil {
			record.DocTitle = extraction.Meta.Title
			record.DocAuthor = extraction.Meta.Author
			record.DocSubject = extraction.Meta.Subject
			record.DocCreator = extraction.Meta.Creator
		}
		if strings.TrimSpace(extraction.Text) == "" {
			// Empty text is a soft failure: the material is kept but
			// cannot feed question generation.
			record.Status = "empty"
		} else {
			record.Status = "processed"
		}
	case errors.Is(err, extractor.ErrUnsupported):
		// Video and other allow-listed but non-extractable formats are
		// stored without text.
		record.Status = "empty"
		record.ErrorMessage = err.Error()
	default:
		u.cfg.Log.WithError(err).WithField("file", f.Filename).Warn("extraction failed")
		record.Status = "failed"
		record.ErrorMessage = err.Error()
	}

	if dbErr := u.cfg.Repository.Create(nil, record); dbErr != nil {
		u.cfg.Log.WithError(dbErr).WithField("file", f.Filename).Error("failed to store material")
		return entity.MaterialUploadResult{
			Filename: f.Filename,
			Status:   "failed",
			Error:    dbErr.Error(),
		}
	}

	return entity.MaterialUploadResult{
		MaterialID:    materialID,
		Filename:      f.Filename,
		SourceFormat:  record.SourceFormat,
		Status:        record.Status,
		Error:         record.ErrorMessage,
		TextLength:    len(record.ExtractedText),
		PageCount:     record.PageCount,
		SlideCount:    record.SlideCount,
		OCRConfidence: record.OCRConfidence,
	}
}

func (u *materialUsecase) GetMaterial(ctx context.Context, materialID string) (*entity.MaterialDetail, error) {
	material, err := u.cfg.Repository.FindByMaterialID(nil, materialID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Material not found")
		}
		return nil, err
	}
	detail := toMaterialDetail(material, true)
	return &detail, nil
}

func (u *materialUsecase) ListMaterials(ctx context.Context, subject string) ([]entity.MaterialDetail, error) {
	var materials []internalEntity.Material
	var err error
	if subject != "" {
		materials, err = u.cfg.Repository.FindBySubject(nil, subject)
	} else {
		materials, err = u.cfg.Repository.FindAll(nil)
	}
	if err != nil {
		return nil, err
	}

	details := make([]entity.MaterialDetail, 0, len(materials))
	for i := range materials {
		details = append(details, toMaterialDetail(&materials[i], false))
	}
	return details, nil
}

func (u *materialUsecase) DeleteMaterial(ctx context.Context, materialID string) error {
	if _, err := u.cfg.Repository.FindByMaterialID(nil, materialID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Material not found")
		}
		return err
	}
	return u.cfg.Repository.DeleteByMaterialID(nil, materialID)
}

func toMaterialDetail(m *internalEntity.Material, includeText bool) entity.MaterialDetail {
	detail := entity.MaterialDetail{
		MaterialID:    m.MaterialID,
		Subject:       m.Subject,
		Filename:      m.Filename,
		SourceFormat:  m.SourceFormat,
		Status:        m.Status,
		TextLength:    len(m.ExtractedText),
		PageCount:     m.PageCount,
		SlideCount:    m.SlideCount,
		OCRConfidence: m.OCRConfidence,
		DocTitle:      m.DocTitle,
		DocAuthor:     m.DocAuthor,
	}
	if includeText {
		detail.ExtractedText = m.ExtractedText
	}
	return detail
}
