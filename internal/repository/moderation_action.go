package repository

import (
	"context"

	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
)

type ModerationActionRepository interface {
	Create(ctx context.Context, action *entity.ModerationAction) error
	GetList(ctx context.Context, offset, limit int) ([]entity.ModerationAction, error)
	Count(ctx context.Context) (int64, error)
}

type moderationActionRepository struct{}

func NewModerationActionRepository() *moderationActionRepository {
	return &moderationActionRepository{}
}

func (r *moderationActionRepository) Create(ctx context.Context, action *entity.ModerationAction) error {
	return xcontext.DB(ctx).Create(action).Error
}

func (r *moderationActionRepository) GetList(ctx context.Context, offset, limit int) ([]entity.ModerationAction, error) {
	var result []entity.ModerationAction
	err := xcontext.DB(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *moderationActionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.ModerationAction{}).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
