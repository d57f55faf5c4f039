package repository

import (
	"context"

	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
)

type FollowerRepository interface {
	Create(ctx context.Context, follower *entity.Follower) error
	Get(ctx context.Context, followerID, followingID string) (*entity.Follower, error)
	Delete(ctx context.Context, followerID, followingID string) error
	GetFollowers(ctx context.Context, userID string, offset, limit int) ([]entity.Follower, error)
	GetFollowing(ctx context.Context, userID string, offset, limit int) ([]entity.Follower, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
}

type followerRepository struct{}

func NewFollowerRepository() *followerRepository {
	return &followerRepository{}
}

func (r *followerRepository) Create(ctx context.Context, follower *entity.Follower) error {
	return xcontext.DB(ctx).Create(follower).Error
}

func (r *followerRepository) Get(ctx context.Context, followerID, followingID string) (*entity.Follower, error) {
	var result entity.Follower
	err := xcontext.DB(ctx).
		Take(&result, "follower_id=? AND following_id=?", followerID, followingID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *followerRepository) Delete(ctx context.Context, followerID, followingID string) error {
	return xcontext.DB(ctx).
		Delete(&entity.Follower{}, "follower_id=? AND following_id=?", followerID, followingID).Error
}

func (r *followerRepository) GetFollowers(ctx context.Context, userID string, offset, limit int) ([]entity.Follower, error) {
	var result []entity.Follower
	err := xcontext.DB(ctx).
		Where("following_id=?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followerRepository) GetFollowing(ctx context.Context, userID string, offset, limit int) ([]entity.Follower, error) {
	var result []entity.Follower
	err := xcontext.DB(ctx).
		Where("follower_id=?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followerRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Follower{}).
		Where("following_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *followerRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Follower{}).
		Where("follower_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
