package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/WeepingDogel/simple-social-board-api/internal/common"
	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/internal/model"
	"github.com/WeepingDogel/simple-social-board-api/internal/repository"
	"github.com/WeepingDogel/simple-social-board-api/internal/search"
	"github.com/WeepingDogel/simple-social-board-api/pkg/errorx"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type AdminDomain interface {
	DeletePost(context.Context, *model.AdminDeletePostRequest) (*model.AdminDeletePostResponse, error)
	Moderate(context.Context, *model.AdminModerateRequest) (*model.AdminModerateResponse, error)
	SetUserActive(context.Context, *model.AdminSetUserActiveRequest) (*model.AdminSetUserActiveResponse, error)
	SetUserAdmin(context.Context, *model.AdminSetUserAdminRequest) (*model.AdminSetUserAdminResponse, error)
	GetUsers(context.Context, *model.AdminGetUsersRequest) (*model.AdminGetUsersResponse, error)
	GetActions(context.Context, *model.AdminGetActionsRequest) (*model.AdminGetActionsResponse, error)
}

var moderateActionTypes = []string{
	entity.ActionDeletePost,
	entity.ActionBanUser,
	entity.ActionWarnUser,
	entity.ActionUnbanUser,
}

type adminDomain struct {
	userRepo             repository.UserRepository
	postRepo             repository.PostRepository
	likeRepo             repository.LikeRepository
	repostRepo           repository.RepostRepository
	moderationActionRepo repository.ModerationActionRepository
	searchCaller         search.Caller
}

func NewAdminDomain(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	repostRepo repository.RepostRepository,
	moderationActionRepo repository.ModerationActionRepository,
	searchCaller search.Caller,
) *adminDomain {
	return &adminDomain{
		userRepo:             userRepo,
		postRepo:             postRepo,
		likeRepo:             likeRepo,
		repostRepo:           repostRepo,
		moderationActionRepo: moderationActionRepo,
		searchCaller:         searchCaller,
	}
}

func (d *adminDomain) DeletePost(
	ctx context.Context, req *model.AdminDeletePostRequest,
) (*model.AdminDeletePostResponse, error) {
	if req.PostID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty post id")
	}

	post, err := d.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	err = deletePostCascade(ctx, d.postRepo, d.likeRepo, d.repostRepo, d.searchCaller, post)
	if err != nil {
		return nil, err
	}

	d.recordAction(ctx, entity.ActionDeletePost, "", post.ID, req.Reason)
	return &model.AdminDeletePostResponse{Message: "Post deleted"}, nil
}

// Moderate takes a free-form moderation action. Banning and unbanning flip
// the target's active flag, warnings and post actions only land in the audit
// log.
func (d *adminDomain) Moderate(
	ctx context.Context, req *model.AdminModerateRequest,
) (*model.AdminModerateResponse, error) {
	if !slices.Contains(moderateActionTypes, req.ActionType) {
		return nil, errorx.New(errorx.BadRequest,
			"Action type must be one of: %v", moderateActionTypes)
	}

	if strings.HasSuffix(req.ActionType, "_USER") && req.TargetUserID == "" {
		return nil, errorx.New(errorx.BadRequest, "User actions require a target user id")
	}

	if strings.HasSuffix(req.ActionType, "_POST") && req.TargetPostID == "" {
		return nil, errorx.New(errorx.BadRequest, "Post actions require a target post id")
	}

	switch req.ActionType {
	case entity.ActionBanUser, entity.ActionUnbanUser:
		if _, err := d.getTargetUser(ctx, req.TargetUserID); err != nil {
			return nil, err
		}

		active := req.ActionType == entity.ActionUnbanUser
		if err := d.userRepo.SetActive(ctx, req.TargetUserID, active); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
			return nil, errorx.Unknown
		}
	}

	action := &entity.ModerationAction{
		Base:       entity.Base{ID: uuid.NewString()},
		AdminID:    xcontext.RequestUserID(ctx),
		ActionType: req.ActionType,
	}

	if req.TargetUserID != "" {
		action.TargetUserID = sql.NullString{Valid: true, String: req.TargetUserID}
	}

	if req.TargetPostID != "" {
		action.TargetPostID = sql.NullString{Valid: true, String: req.TargetPostID}
	}

	if req.Reason != "" {
		action.Reason = sql.NullString{Valid: true, String: req.Reason}
	}

	if err := d.moderationActionRepo.Create(ctx, action); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record moderation action: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.AdminModerateResponse(model.ConvertModerationAction(action))
	return &resp, nil
}

func (d *adminDomain) SetUserActive(
	ctx context.Context, req *model.AdminSetUserActiveRequest,
) (*model.AdminSetUserActiveResponse, error) {
	user, err := d.getTargetUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if user.ID == xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.BadRequest, "Cannot change your own account state")
	}

	if err := d.userRepo.SetActive(ctx, user.ID, req.Active); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	actionType := entity.ActionDeactivateUser
	if req.Active {
		actionType = entity.ActionActivateUser
	}

	d.recordAction(ctx, actionType, user.ID, "", req.Reason)

	user.IsActive = req.Active
	return &model.AdminSetUserActiveResponse{User: model.ConvertUser(user)}, nil
}

func (d *adminDomain) SetUserAdmin(
	ctx context.Context, req *model.AdminSetUserAdminRequest,
) (*model.AdminSetUserAdminResponse, error) {
	user, err := d.getTargetUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if user.ID == xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.BadRequest, "Cannot change your own admin role")
	}

	if err := d.userRepo.SetAdmin(ctx, user.ID, req.Admin); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	actionType := entity.ActionRevokeAdmin
	if req.Admin {
		actionType = entity.ActionGrantAdmin
	}

	d.recordAction(ctx, actionType, user.ID, "", req.Reason)

	user.IsAdmin = req.Admin
	return &model.AdminSetUserAdminResponse{User: model.ConvertUser(user)}, nil
}

func (d *adminDomain) GetUsers(
	ctx context.Context, req *model.AdminGetUsersRequest,
) (*model.AdminGetUsersResponse, error) {
	offset, limit, err := common.Pagination(ctx, req.Page, req.Limit)
	if err != nil {
		return nil, err
	}

	users, err := d.userRepo.GetList(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.userRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.AdminGetUsersResponse{Users: []model.User{}, Total: total}
	for i := range users {
		resp.Users = append(resp.Users, model.ConvertUser(&users[i]))
	}

	return resp, nil
}

func (d *adminDomain) GetActions(
	ctx context.Context, req *model.AdminGetActionsRequest,
) (*model.AdminGetActionsResponse, error) {
	offset, limit, err := common.Pagination(ctx, req.Page, req.Limit)
	if err != nil {
		return nil, err
	}

	actions, err := d.moderationActionRepo.GetList(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get moderation actions: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.moderationActionRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count moderation actions: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.AdminGetActionsResponse{Actions: []model.ModerationAction{}, Total: total}
	for i := range actions {
		resp.Actions = append(resp.Actions, model.ConvertModerationAction(&actions[i]))
	}

	return resp, nil
}

func (d *adminDomain) getTargetUser(ctx context.Context, userID string) (*entity.User, error) {
	if userID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return user, nil
}

// recordAction appends to the audit log. A failure here never rolls back the
// moderation itself, it is only logged.
func (d *adminDomain) recordAction(ctx context.Context, actionType, targetUserID, targetPostID, reason string) {
	action := &entity.ModerationAction{
		Base:       entity.Base{ID: uuid.NewString()},
		AdminID:    xcontext.RequestUserID(ctx),
		ActionType: actionType,
	}

	if targetUserID != "" {
		action.TargetUserID = sql.NullString{Valid: true, String: targetUserID}
	}

	if targetPostID != "" {
		action.TargetPostID = sql.NullString{Valid: true, String: targetPostID}
	}

	if reason != "" {
		action.Reason = sql.NullString{Valid: true, String: reason}
	}

	if err := d.moderationActionRepo.Create(ctx, action); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record moderation action: %v", err)
	}
}
