package repository

import (
	"context"
	"errors"

	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
	"gorm.io/gorm"
)

type UserProfileRepository interface {
	Create(ctx context.Context, profile *entity.UserProfile) error
	GetByUserID(ctx context.Context, userID string) (*entity.UserProfile, error)
	GetByUserIDs(ctx context.Context, userIDs []string) ([]entity.UserProfile, error)
	UpdateByUserID(ctx context.Context, userID string, data *entity.UserProfile) error
	IncreaseFollowerCount(ctx context.Context, userID string) error
	DecreaseFollowerCount(ctx context.Context, userID string) error
	IncreaseFollowingCount(ctx context.Context, userID string) error
	DecreaseFollowingCount(ctx context.Context, userID string) error
}

type userProfileRepository struct{}

func NewUserProfileRepository() *userProfileRepository {
	return &userProfileRepository{}
}

func (r *userProfileRepository) Create(ctx context.Context, profile *entity.UserProfile) error {
	return xcontext.DB(ctx).Create(profile).Error
}

func (r *userProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.UserProfile, error) {
	var result entity.UserProfile
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userProfileRepository) GetByUserIDs(ctx context.Context, userIDs []string) ([]entity.UserProfile, error) {
	var result []entity.UserProfile
	if err := xcontext.DB(ctx).Find(&result, "user_id IN (?)", userIDs).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userProfileRepository) UpdateByUserID(ctx context.Context, userID string, data *entity.UserProfile) error {
	return xcontext.DB(ctx).
		Model(&entity.UserProfile{}).
		Where("user_id=?", userID).
		Updates(data).Error
}

func (r *userProfileRepository) IncreaseFollowerCount(ctx context.Context, userID string) error {
	return r.updateCounter(ctx, userID, "follower_count", gorm.Expr("follower_count+1"))
}

func (r *userProfileRepository) DecreaseFollowerCount(ctx context.Context, userID string) error {
	return r.updateCounter(ctx, userID, "follower_count",
		gorm.Expr("CASE WHEN follower_count > 0 THEN follower_count-1 ELSE 0 END"))
}

func (r *userProfileRepository) IncreaseFollowingCount(ctx context.Context, userID string) error {
	return r.updateCounter(ctx, userID, "following_count", gorm.Expr("following_count+1"))
}

func (r *userProfileRepository) DecreaseFollowingCount(ctx context.Context, userID string) error {
	return r.updateCounter(ctx, userID, "following_count",
		gorm.Expr("CASE WHEN following_count > 0 THEN following_count-1 ELSE 0 END"))
}

func (r *userProfileRepository) updateCounter(ctx context.Context, userID, column string, expr any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.UserProfile{}).
		Where("user_id=?", userID).
		Update(column, expr)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
