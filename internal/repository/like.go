package repository

import (
	"context"

	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
)

type LikeRepository interface {
	Create(ctx context.Context, like *entity.Like) error
	Get(ctx context.Context, userID, postID string) (*entity.Like, error)
	Delete(ctx context.Context, userID, postID string) error
	DeleteByPostID(ctx context.Context, postID string) error
	CountByPostID(ctx context.Context, postID string) (int64, error)
}

type likeRepository struct{}

func NewLikeRepository() *likeRepository {
	return &likeRepository{}
}

func (r *likeRepository) Create(ctx context.Context, like *entity.Like) error {
	return xcontext.DB(ctx).Create(like).Error
}

func (r *likeRepository) Get(ctx context.Context, userID, postID string) (*entity.Like, error) {
	var result entity.Like
	err := xcontext.DB(ctx).Take(&result, "user_id=? AND post_id=?", userID, postID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, postID string) error {
	return xcontext.DB(ctx).Delete(&entity.Like{}, "user_id=? AND post_id=?", userID, postID).Error
}

func (r *likeRepository) DeleteByPostID(ctx context.Context, postID string) error {
	return xcontext.DB(ctx).Delete(&entity.Like{}, "post_id=?", postID).Error
}

func (r *likeRepository) CountByPostID(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Like{}).Where("post_id=?", postID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
