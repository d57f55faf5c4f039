package repository

import (
	"context"
	"errors"

	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetFeed(ctx context.Context, offset, limit int) ([]entity.Post, error)
	GetListByAuthorID(ctx context.Context, authorID string, offset, limit int) ([]entity.Post, error)
	GetReplies(ctx context.Context, postID string, offset, limit int) ([]entity.Post, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Post, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteRepostCopies(ctx context.Context, originalPostID string) ([]entity.Post, error)
	IncreaseLikeCount(ctx context.Context, id string) error
	DecreaseLikeCount(ctx context.Context, id string) error
	IncreaseRepostCount(ctx context.Context, id string) error
	IncreaseReplyCount(ctx context.Context, id string) error
	DecreaseReplyCount(ctx context.Context, id string) error
}

type postRepository struct{}

func NewPostRepository() *postRepository {
	return &postRepository{}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	return xcontext.DB(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var result entity.Post
	err := xcontext.DB(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Take(&result, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *postRepository) GetFeed(ctx context.Context, offset, limit int) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("reply_to_post_id IS NULL").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) GetListByAuthorID(ctx context.Context, authorID string, offset, limit int) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("author_id=? AND reply_to_post_id IS NULL", authorID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) GetReplies(ctx context.Context, postID string, offset, limit int) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("reply_to_post_id=?", postID).
		Order("created_at ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Find(&result, "id IN (?)", ids).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) DeleteByID(ctx context.Context, id string) error {
	if err := xcontext.DB(ctx).Delete(&entity.PostImage{}, "post_id=?", id).Error; err != nil {
		return err
	}

	return xcontext.DB(ctx).Delete(&entity.Post{}, "id=?", id).Error
}

// DeleteRepostCopies removes all copy posts that point at the given original
// and returns them so the caller can fix up counters and search indexes.
func (r *postRepository) DeleteRepostCopies(ctx context.Context, originalPostID string) ([]entity.Post, error) {
	var copies []entity.Post
	err := xcontext.DB(ctx).Find(&copies, "original_post_id=?", originalPostID).Error
	if err != nil {
		return nil, err
	}

	for _, c := range copies {
		if err := r.DeleteByID(ctx, c.ID); err != nil {
			return nil, err
		}
	}

	return copies, nil
}

func (r *postRepository) IncreaseLikeCount(ctx context.Context, id string) error {
	return r.updateCounter(ctx, id, "like_count", gorm.Expr("like_count+1"))
}

func (r *postRepository) DecreaseLikeCount(ctx context.Context, id string) error {
	return r.updateCounter(ctx, id, "like_count",
		gorm.Expr("CASE WHEN like_count > 0 THEN like_count-1 ELSE 0 END"))
}

func (r *postRepository) IncreaseRepostCount(ctx context.Context, id string) error {
	return r.updateCounter(ctx, id, "repost_count", gorm.Expr("repost_count+1"))
}

func (r *postRepository) IncreaseReplyCount(ctx context.Context, id string) error {
	return r.updateCounter(ctx, id, "reply_count", gorm.Expr("reply_count+1"))
}

func (r *postRepository) DecreaseReplyCount(ctx context.Context, id string) error {
	return r.updateCounter(ctx, id, "reply_count",
		gorm.Expr("CASE WHEN reply_count > 0 THEN reply_count-1 ELSE 0 END"))
}

func (r *postRepository) updateCounter(ctx context.Context, id, column string, expr any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
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
