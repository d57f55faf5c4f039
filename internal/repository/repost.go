package repository

import (
	"context"

	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
)

type RepostRepository interface {
	Create(ctx context.Context, repost *entity.Repost) error
	Get(ctx context.Context, userID, postID string) (*entity.Repost, error)
	DeleteByPostID(ctx context.Context, postID string) error
}

type repostRepository struct{}

func NewRepostRepository() *repostRepository {
	return &repostRepository{}
}

func (r *repostRepository) Create(ctx context.Context, repost *entity.Repost) error {
	return xcontext.DB(ctx).Create(repost).Error
}

func (r *repostRepository) Get(ctx context.Context, userID, postID string) (*entity.Repost, error) {
	var result entity.Repost
	err := xcontext.DB(ctx).Take(&result, "user_id=? AND post_id=?", userID, postID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *repostRepository) DeleteByPostID(ctx context.Context, postID string) error {
	return xcontext.DB(ctx).Delete(&entity.Repost{}, "post_id=?", postID).Error
}
