package repository

import (
	"context"

	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
)

type MediaFileRepository interface {
	Create(ctx context.Context, file *entity.MediaFile) error
	BulkInsert(ctx context.Context, files []*entity.MediaFile) error
	GetByID(ctx context.Context, id string) (*entity.MediaFile, error)
	GetListByUploaderID(ctx context.Context, uploaderID string, offset, limit int) ([]entity.MediaFile, error)
}

type mediaFileRepository struct{}

func NewMediaFileRepository() *mediaFileRepository {
	return &mediaFileRepository{}
}

func (r *mediaFileRepository) Create(ctx context.Context, file *entity.MediaFile) error {
	return xcontext.DB(ctx).Create(file).Error
}

func (r *mediaFileRepository) BulkInsert(ctx context.Context, files []*entity.MediaFile) error {
	if len(files) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Create(files).Error
}

func (r *mediaFileRepository) GetByID(ctx context.Context, id string) (*entity.MediaFile, error) {
	var result entity.MediaFile
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *mediaFileRepository) GetListByUploaderID(ctx context.Context, uploaderID string, offset, limit int) ([]entity.MediaFile, error) {
	var result []entity.MediaFile
	err := xcontext.DB(ctx).
		Where("uploader_id=?", uploaderID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
