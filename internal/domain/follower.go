package domain

import (
	"context"
	"errors"

	"github.com/WeepingDogel/simple-social-board-api/internal/common"
	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/internal/model"
	"github.com/WeepingDogel/simple-social-board-api/internal/repository"
	"github.com/WeepingDogel/simple-social-board-api/pkg/errorx"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FollowerDomain interface {
	Follow(context.Context, *model.FollowUserRequest) (*model.FollowUserResponse, error)
	Unfollow(context.Context, *model.UnfollowUserRequest) (*model.UnfollowUserResponse, error)
	GetFollowers(context.Context, *model.GetFollowersRequest) (*model.GetFollowersResponse, error)
	GetFollowing(context.Context, *model.GetFollowingRequest) (*model.GetFollowingResponse, error)
	IsFollowing(context.Context, *model.GetIsFollowingRequest) (*model.GetIsFollowingResponse, error)
}

// followerDomain is the only place that writes follower rows or touches the
// denormalized follower and following counters.
type followerDomain struct {
	followerRepo    repository.FollowerRepository
	userRepo        repository.UserRepository
	userProfileRepo repository.UserProfileRepository
}

func NewFollowerDomain(
	followerRepo repository.FollowerRepository,
	userRepo repository.UserRepository,
	userProfileRepo repository.UserProfileRepository,
) *followerDomain {
	return &followerDomain{
		followerRepo:    followerRepo,
		userRepo:        userRepo,
		userProfileRepo: userProfileRepo,
	}
}

func (d *followerDomain) Follow(
	ctx context.Context, req *model.FollowUserRequest,
) (*model.FollowUserResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	if req.UserID == requestUserID {
		return nil, errorx.New(errorx.BadRequest, "Cannot follow yourself")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.followerRepo.Get(ctx, requestUserID, req.UserID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You already follow this user")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get follower: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err := d.followerRepo.Create(ctx, &entity.Follower{
		Base:        entity.Base{ID: uuid.NewString()},
		FollowerID:  requestUserID,
		FollowingID: req.UserID,
	})
	if err != nil {
		// A concurrent duplicate slips past the check above and hits the
		// unique index instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "You already follow this user")
		}

		xcontext.Logger(ctx).Errorf("Cannot create follower: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userProfileRepo.IncreaseFollowerCount(ctx, req.UserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase follower count: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userProfileRepo.IncreaseFollowingCount(ctx, requestUserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase following count: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.FollowUserResponse{Message: "Followed"}, nil
}

func (d *followerDomain) Unfollow(
	ctx context.Context, req *model.UnfollowUserRequest,
) (*model.UnfollowUserResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	if _, err := d.followerRepo.Get(ctx, requestUserID, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "You do not follow this user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get follower: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.followerRepo.Delete(ctx, requestUserID, req.UserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete follower: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userProfileRepo.DecreaseFollowerCount(ctx, req.UserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease follower count: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userProfileRepo.DecreaseFollowingCount(ctx, requestUserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease following count: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.UnfollowUserResponse{Message: "Unfollowed"}, nil
}

func (d *followerDomain) GetFollowers(
	ctx context.Context, req *model.GetFollowersRequest,
) (*model.GetFollowersResponse, error) {
	items, total, page, limit, err := d.getList(ctx, req.UserID, req.Page, req.Limit, true)
	if err != nil {
		return nil, err
	}

	return &model.GetFollowersResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: common.TotalPages(total, limit),
	}, nil
}

func (d *followerDomain) GetFollowing(
	ctx context.Context, req *model.GetFollowingRequest,
) (*model.GetFollowingResponse, error) {
	items, total, page, limit, err := d.getList(ctx, req.UserID, req.Page, req.Limit, false)
	if err != nil {
		return nil, err
	}

	return &model.GetFollowingResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: common.TotalPages(total, limit),
	}, nil
}

func (d *followerDomain) IsFollowing(
	ctx context.Context, req *model.GetIsFollowingRequest,
) (*model.GetIsFollowingResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	_, err := d.followerRepo.Get(ctx, xcontext.RequestUserID(ctx), req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetIsFollowingResponse{IsFollowing: false}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get follower: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetIsFollowingResponse{IsFollowing: true}, nil
}

func (d *followerDomain) getList(
	ctx context.Context, userID string, page, limit int, followers bool,
) ([]model.ShortUser, int64, int, int, error) {
	if userID == "" {
		return nil, 0, 0, 0, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	offset, limit, err := common.Pagination(ctx, page, limit)
	if err != nil {
		return nil, 0, 0, 0, err
	}

	if _, err := d.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, 0, 0, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, 0, 0, 0, errorx.Unknown
	}

	var rows []entity.Follower
	var total int64
	if followers {
		rows, err = d.followerRepo.GetFollowers(ctx, userID, offset, limit)
		if err == nil {
			total, err = d.followerRepo.CountFollowers(ctx, userID)
		}
	} else {
		rows, err = d.followerRepo.GetFollowing(ctx, userID, offset, limit)
		if err == nil {
			total, err = d.followerRepo.CountFollowing(ctx, userID)
		}
	}
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get follower list: %v", err)
		return nil, 0, 0, 0, errorx.Unknown
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if followers {
			ids = append(ids, row.FollowerID)
		} else {
			ids = append(ids, row.FollowingID)
		}
	}

	users, err := d.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, 0, 0, 0, errorx.Unknown
	}

	profiles, err := d.userProfileRepo.GetByUserIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user profiles: %v", err)
		return nil, 0, 0, 0, errorx.Unknown
	}

	userMap := map[string]*entity.User{}
	for i := range users {
		userMap[users[i].ID] = &users[i]
	}

	profileMap := map[string]*entity.UserProfile{}
	for i := range profiles {
		profileMap[profiles[i].UserID] = &profiles[i]
	}

	items := []model.ShortUser{}
	for _, id := range ids {
		user, ok := userMap[id]
		if !ok {
			xcontext.Logger(ctx).Warnf("Cannot find user %s for follower row", id)
			continue
		}

		items = append(items, model.ConvertShortUser(user, profileMap[id]))
	}

	return items, total, offset/limit + 1, limit, nil
}
