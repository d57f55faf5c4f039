package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/internal/model"
	"github.com/WeepingDogel/simple-social-board-api/internal/notification"
	"github.com/WeepingDogel/simple-social-board-api/internal/notification/event"
	"github.com/WeepingDogel/simple-social-board-api/internal/repository"
	"github.com/WeepingDogel/simple-social-board-api/internal/search"
	"github.com/WeepingDogel/simple-social-board-api/pkg/errorx"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InteractionDomain interface {
	Like(context.Context, *model.LikePostRequest) (*model.LikePostResponse, error)
	Unlike(context.Context, *model.UnlikePostRequest) (*model.UnlikePostResponse, error)
	Repost(context.Context, *model.RepostPostRequest) (*model.RepostPostResponse, error)
}

type interactionDomain struct {
	postRepo     repository.PostRepository
	likeRepo     repository.LikeRepository
	repostRepo   repository.RepostRepository
	searchCaller search.Caller
	hub          *notification.Hub
}

func NewInteractionDomain(
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	repostRepo repository.RepostRepository,
	searchCaller search.Caller,
	hub *notification.Hub,
) *interactionDomain {
	return &interactionDomain{
		postRepo:     postRepo,
		likeRepo:     likeRepo,
		repostRepo:   repostRepo,
		searchCaller: searchCaller,
		hub:          hub,
	}
}

func (d *interactionDomain) Like(
	ctx context.Context, req *model.LikePostRequest,
) (*model.LikePostResponse, error) {
	post, err := d.getPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	requestUserID := xcontext.RequestUserID(ctx)
	if _, err := d.likeRepo.Get(ctx, requestUserID, post.ID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You already liked this post")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get like: %v", err)
		return nil, errorx.Unknown
	}

	like := &entity.Like{
		Base:   entity.Base{ID: uuid.NewString()},
		UserID: requestUserID,
		PostID: post.ID,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.likeRepo.Create(ctx, like); err != nil {
		// A concurrent duplicate slips past the check above and hits the
		// unique index instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "You already liked this post")
		}

		xcontext.Logger(ctx).Errorf("Cannot create like: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.postRepo.IncreaseLikeCount(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase like count: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.hub.Broadcast(event.New(&event.NewLikeEvent{
		PostID:    post.ID,
		UserID:    requestUserID,
		LikeCount: post.LikeCount + 1,
	}))

	if post.AuthorID != requestUserID {
		d.hub.SendToUser(post.AuthorID, event.New(&event.NotificationEvent{
			Kind:    "like",
			PostID:  post.ID,
			ActorID: requestUserID,
			Message: "Someone liked your post",
		}))
	}

	resp := model.LikePostResponse(model.ConvertLike(like))
	return &resp, nil
}

func (d *interactionDomain) Unlike(
	ctx context.Context, req *model.UnlikePostRequest,
) (*model.UnlikePostResponse, error) {
	post, err := d.getPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	requestUserID := xcontext.RequestUserID(ctx)
	if _, err := d.likeRepo.Get(ctx, requestUserID, post.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "You have not liked this post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get like: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.likeRepo.Delete(ctx, requestUserID, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete like: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.postRepo.DecreaseLikeCount(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease like count: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.UnlikePostResponse{Message: "Like removed"}, nil
}

func (d *interactionDomain) Repost(
	ctx context.Context, req *model.RepostPostRequest,
) (*model.RepostPostResponse, error) {
	post, err := d.getPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if post.OriginalPostID.Valid {
		return nil, errorx.New(errorx.BadRequest, "Cannot repost a repost")
	}

	requestUserID := xcontext.RequestUserID(ctx)
	if _, err := d.repostRepo.Get(ctx, requestUserID, post.ID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You already reposted this post")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get repost: %v", err)
		return nil, errorx.Unknown
	}

	repost := &entity.Repost{
		Base:   entity.Base{ID: uuid.NewString()},
		UserID: requestUserID,
		PostID: post.ID,
	}

	// The repost also appears as a post of its own on the reposting user's
	// timeline, pointing back at the original.
	repostCopy := &entity.Post{
		Base:           entity.Base{ID: uuid.NewString()},
		AuthorID:       requestUserID,
		Content:        post.Content,
		OriginalPostID: sql.NullString{Valid: true, String: post.ID},
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.repostRepo.Create(ctx, repost); err != nil {
		// A concurrent duplicate slips past the check above and hits the
		// unique index instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "You already reposted this post")
		}

		xcontext.Logger(ctx).Errorf("Cannot create repost: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.postRepo.Create(ctx, repostCopy); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create repost copy: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.postRepo.IncreaseRepostCount(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase repost count: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	err = d.searchCaller.IndexPost(ctx, repostCopy.ID, search.PostData{Content: repostCopy.Content})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot index repost copy %s: %v", repostCopy.ID, err)
	}

	d.hub.Broadcast(event.New(&event.NewRepostEvent{
		PostID:      post.ID,
		UserID:      requestUserID,
		RepostCount: post.RepostCount + 1,
		Post:        model.ConvertPost(repostCopy),
	}))

	if post.AuthorID != requestUserID {
		d.hub.SendToUser(post.AuthorID, event.New(&event.NotificationEvent{
			Kind:    "repost",
			PostID:  post.ID,
			ActorID: requestUserID,
			Message: "Someone reposted your post",
		}))
	}

	resp := model.RepostPostResponse(model.ConvertRepost(repost))
	return &resp, nil
}

func (d *interactionDomain) getPost(ctx context.Context, postID string) (*entity.Post, error) {
	if postID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty post id")
	}

	post, err := d.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	return post, nil
}
