package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/repositories"
	apperrors "atolye-takip/pkg/errors"
	"atolye-takip/pkg/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ModelServiceInterface interface {
	GetModels(ctx context.Context, filter types.Filter, firmID uint64) ([]dto.ModelDTO, uint64, error)
	FindModel(ctx context.Context, id uint64) (*dto.ModelDTO, error)
	CreateModel(ctx context.Context, payload dto.CreateModelDTO) (*dto.ModelDTO, error)
	UpdateModel(ctx context.Context, id uint64, payload dto.UpdateModelDTO) (*dto.ModelDTO, error)
	UploadModelImage(ctx context.Context, id uint64, file *multipart.FileHeader) (*dto.ModelDTO, error)
	DeleteModel(ctx context.Context, id uint64) error
}

type ModelService struct {
	repo      repositories.ModelRepositoryInterface
	uploadDir string
	logger    *zap.Logger
}

func NewModelService(repo repositories.ModelRepositoryInterface, uploadDir string, logger *zap.Logger) ModelServiceInterface {
	return &ModelService{repo: repo, uploadDir: uploadDir, logger: logger}
}

func (s *ModelService) GetModels(ctx context.Context, filter types.Filter, firmID uint64) ([]dto.ModelDTO, uint64, error) {
	return s.repo.GetModels(ctx, uint64(filter.Limit), uint64(filter.Offset), filter.Search, firmID)
}

func (s *ModelService) FindModel(ctx context.Context, id uint64) (*dto.ModelDTO, error) {
	return s.repo.FindModel(ctx, id)
}

func (s *ModelService) CreateModel(ctx context.Context, payload dto.CreateModelDTO) (*dto.ModelDTO, error) {
	return s.repo.CreateModel(ctx, payload)
}

func (s *ModelService) UpdateModel(ctx context.Context, id uint64, payload dto.UpdateModelDTO) (*dto.ModelDTO, error) {
	return s.repo.UpdateModel(ctx, id, payload, nil)
}

// UploadModelImage stores the file under a fresh name and records the path.
// Uploaded filenames are never trusted beyond their extension.
func (s *ModelService) UploadModelImage(ctx context.Context, id uint64, file *multipart.FileHeader) (*dto.ModelDTO, error) {
	if _, err := s.repo.FindModel(ctx, id); err != nil {
		return nil, err
	}

	path, err := saveUpload(file, filepath.Join(s.uploadDir, "models"))
	if err != nil {
		s.logger.Error("model image upload failed", zap.Uint64("model_id", id), zap.Error(err))
		return nil, err
	}
	return s.repo.UpdateModel(ctx, id, dto.UpdateModelDTO{}, &path)
}

func (s *ModelService) DeleteModel(ctx context.Context, id uint64) error {
	return s.repo.DeactivateModel(ctx, id)
}

func saveUpload(file *multipart.FileHeader, dir string) (string, error) {
	ext := filepath.Ext(file.Filename)
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", apperrors.NewInvalidInputError("unsupported image type %q", ext)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	path := filepath.Join(dir, uuid.NewString()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
