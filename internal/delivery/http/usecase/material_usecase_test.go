package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/passai/passai-be/internal/delivery/http/repository"
	internalEntity "github.com/passai/passai-be/internal/entity"
	"github.com/passai/passai-be/internal/extractor"
)

func newMaterialUsecase(db *gorm.DB) MaterialUsecase {
	return NewMaterialUsecase(MaterialConfig{
		DB:         db,
		Dispatcher: extractor.NewDispatcher(nil),
		Repository: repository.NewMaterialRepository(db),
		Log:        testLogger(),
	})
}

func TestUploadRejectsEmptyBatch(t *testing.T) {
	uc := newMaterialUsecase(openTestDB(t))

	_, err := uc.Upload(context.Background(), "biology", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No files provided")
}

func TestUploadRejectsTooManyFiles(t *testing.T) {
	uc := newMaterialUsecase(openTestDB(t))

	files := make([]UploadFile, MaxFilesPerBatch+1)
	for i := range files {
		files[i] = UploadFile{Filename: "a.txt", MimeType: "text/plain", Content: []byte("x")}
	}

	_, err := uc.Upload(context.Background(), "biology", files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Too many files")
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	uc := newMaterialUsecase(openTestDB(t))

	big := UploadFile{Filename: "big.txt", MimeType: "text/plain", Content: make([]byte, MaxFileSize+1)}

	_, err := uc.Upload(context.Background(), "biology", []UploadFile{big})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "per-file limit")
}

func TestUploadRejectsOversizedBatch(t *testing.T) {
	uc := newMaterialUsecase(openTestDB(t))

	// Five files sharing one buffer keep the allocation at a single 50MB
	// slice while the batch total crosses 200MB.
	buf := make([]byte, MaxFileSize)
	files := make([]UploadFile, 5)
	for i := range files {
		files[i] = UploadFile{Filename: "part.txt", MimeType: "text/plain", Content: buf}
	}

	_, err := uc.Upload(context.Background(), "biology", files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch limit")
}

func TestUploadProcessesTextFile(t *testing.T) {
	db := openTestDB(t)
	uc := newMaterialUsecase(db)

	res, err := uc.Upload(context.Background(), "biology", []UploadFile{
		{Filename: "notes.txt", MimeType: "text/plain", Content: []byte("Cells are the basic unit of life.")},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 0, res.Failed)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "processed", res.Results[0].Status)
	assert.Equal(t, "text", res.Results[0].SourceFormat)
	assert.NotEmpty(t, res.Results[0].MaterialID)

	var record internalEntity.Material
	require.NoError(t, db.Where("material_id = ?", res.Results[0].MaterialID).First(&record).Error)
	assert.Equal(t, "Cells are the basic unit of life.", record.ExtractedText)
	assert.Equal(t, "biology", record.Subject)
}

func TestUploadStoresVideoAsEmpty(t *testing.T) {
	db := openTestDB(t)
	uc := newMaterialUsecase(db)

	res, err := uc.Upload(context.Background(), "biology", []UploadFile{
		{Filename: "lecture.mp4", MimeType: "video/mp4", Content: []byte{0x00, 0x00, 0x00, 0x18}},
	})
	require.NoError(t, err)

	// Unsupported-but-recognized formats are kept without text, not failed.
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, "empty", res.Results[0].Status)
	assert.NotEmpty(t, res.Results[0].Error)

	var record internalEntity.Material
	require.NoError(t, db.Where("material_id = ?", res.Results[0].MaterialID).First(&record).Error)
	assert.Equal(t, "empty", record.Status)
}

func TestUploadIsolatesPerFileFailures(t *testing.T) {
	db := openTestDB(t)
	uc := newMaterialUsecase(db)

	res, err := uc.Upload(context.Background(), "biology", []UploadFile{
		{Filename: "blob.bin", MimeType: "application/octet-stream", Content: []byte{0x00, 0x01, 0x02, 0xff}},
		{Filename: "notes.txt", MimeType: "text/plain", Content: []byte("Photosynthesis converts light to energy.")},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, "failed", res.Results[0].Status)
	assert.Equal(t, "processed", res.Results[1].Status)

	// The failed file is still recorded for inspection.
	var count int64
	require.NoError(t, db.Model(&internalEntity.Material{}).Where("subject = ?", "biology").Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestGetMaterialIncludesTextListDoesNot(t *testing.T) {
	db := openTestDB(t)
	uc := newMaterialUsecase(db)

	res, err := uc.Upload(context.Background(), "biology", []UploadFile{
		{Filename: "notes.txt", MimeType: "text/plain", Content: []byte("Mitochondria produce ATP.")},
	})
	require.NoError(t, err)
	materialID := res.Results[0].MaterialID

	detail, err := uc.GetMaterial(context.Background(), materialID)
	require.NoError(t, err)
	assert.Equal(t, "Mitochondria produce ATP.", detail.ExtractedText)

	list, err := uc.ListMaterials(context.Background(), "biology")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].ExtractedText)
	assert.Equal(t, len("Mitochondria produce ATP."), list[0].TextLength)
}

func TestDeleteMaterial(t *testing.T) {
	db := openTestDB(t)
	uc := newMaterialUsecase(db)

	res, err := uc.Upload(context.Background(), "biology", []UploadFile{
		{Filename: "notes.txt", MimeType: "text/plain", Content: []byte("Osmosis.")},
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteMaterial(context.Background(), res.Results[0].MaterialID))

	_, err = uc.GetMaterial(context.Background(), res.Results[0].MaterialID)
	assert.Error(t, err)

	err = uc.DeleteMaterial(context.Background(), "material-missing")
	assert.Error(t, err)
}
