package domain

import (
	"testing"

	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/internal/model"
	"github.com/WeepingDogel/simple-social-board-api/internal/repository"
	"github.com/WeepingDogel/simple-social-board-api/pkg/errorx"
	"github.com/WeepingDogel/simple-social-board-api/pkg/testutil"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newTestAdminDomain() *adminDomain {
	return NewAdminDomain(
		repository.NewUserRepository(),
		repository.NewPostRepository(),
		repository.NewLikeRepository(),
		repository.NewRepostRepository(),
		repository.NewModerationActionRepository(),
		&testutil.MockSearchCaller{},
	)
}

func Test_adminDomain_DeletePost(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAdminDomain()

	_, err := domain.DeletePost(ctx, &model.AdminDeletePostRequest{
		PostID: testutil.Post1.ID,
		Reason: "spam",
	})
	require.NoError(t, err)

	var count int64
	tx := xcontext.DB(ctx).Model(&entity.Post{}).Where("id=?", testutil.Post1.ID).Count(&count)
	require.NoError(t, tx.Error)
	require.Equal(t, int64(0), count)

	var action entity.ModerationAction
	tx = xcontext.DB(ctx).Take(&action, "action_type=?", entity.ActionDeletePost)
	require.NoError(t, tx.Error)
	require.Equal(t, testutil.Admin.ID, action.AdminID)
	require.Equal(t, testutil.Post1.ID, action.TargetPostID.String)
	require.Equal(t, "spam", action.Reason.String)
}

func Test_adminDomain_DeletePost_notFound(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAdminDomain()

	_, err := domain.DeletePost(ctx, &model.AdminDeletePostRequest{PostID: "missing"})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_adminDomain_SetUserActive(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAdminDomain()

	resp, err := domain.SetUserActive(ctx, &model.AdminSetUserActiveRequest{
		UserID: testutil.User1.ID,
		Active: false,
		Reason: "abuse",
	})
	require.NoError(t, err)
	require.False(t, resp.User.IsActive)

	var user entity.User
	tx := xcontext.DB(ctx).Take(&user, "id=?", testutil.User1.ID)
	require.NoError(t, tx.Error)
	require.False(t, user.IsActive)

	var action entity.ModerationAction
	tx = xcontext.DB(ctx).Take(&action, "action_type=?", entity.ActionDeactivateUser)
	require.NoError(t, tx.Error)
	require.Equal(t, testutil.User1.ID, action.TargetUserID.String)
	require.Equal(t, "abuse", action.Reason.String)

	resp, err = domain.SetUserActive(ctx, &model.AdminSetUserActiveRequest{
		UserID: testutil.User1.ID,
		Active: true,
	})
	require.NoError(t, err)
	require.True(t, resp.User.IsActive)

	var activateAction entity.ModerationAction
	tx = xcontext.DB(ctx).Take(&activateAction, "action_type=?", entity.ActionActivateUser)
	require.NoError(t, tx.Error)
	require.Equal(t, testutil.User1.ID, activateAction.TargetUserID.String)
}

func Test_adminDomain_SetUserActive_self(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAdminDomain()

	_, err := domain.SetUserActive(ctx, &model.AdminSetUserActiveRequest{
		UserID: testutil.Admin.ID,
		Active: false,
	})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
}

func Test_adminDomain_SetUserAdmin(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAdminDomain()

	resp, err := domain.SetUserAdmin(ctx, &model.AdminSetUserAdminRequest{
		UserID: testutil.User1.ID,
		Admin:  true,
	})
	require.NoError(t, err)
	require.True(t, resp.User.IsAdmin)

	var user entity.User
	tx := xcontext.DB(ctx).Take(&user, "id=?", testutil.User1.ID)
	require.NoError(t, tx.Error)
	require.True(t, user.IsAdmin)

	var action entity.ModerationAction
	tx = xcontext.DB(ctx).Take(&action, "action_type=?", entity.ActionGrantAdmin)
	require.NoError(t, tx.Error)
	require.Equal(t, testutil.User1.ID, action.TargetUserID.String)
}

func Test_adminDomain_SetUserAdmin_self(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAdminDomain()

	_, err := domain.SetUserAdmin(ctx, &model.AdminSetUserAdminRequest{
		UserID: testutil.Admin.ID,
		Admin:  false,
	})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
}

func Test_adminDomain_Moderate_banAndUnban(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAdminDomain()

	resp, err := domain.Moderate(ctx, &model.AdminModerateRequest{
		ActionType:   entity.ActionBanUser,
		TargetUserID: testutil.User1.ID,
		Reason:       "abuse",
	})
	require.NoError(t, err)
	require.Equal(t, testutil.Admin.ID, resp.AdminID)
	require.Equal(t, entity.ActionBanUser, resp.ActionType)
	require.Equal(t, testutil.User1.ID, resp.TargetUserID)
	require.Equal(t, "abuse", resp.Reason)

	var user entity.User
	tx := xcontext.DB(ctx).Take(&user, "id=?", testutil.User1.ID)
	require.NoError(t, tx.Error)
	require.False(t, user.IsActive)

	_, err = domain.Moderate(ctx, &model.AdminModerateRequest{
		ActionType:   entity.ActionUnbanUser,
		TargetUserID: testutil.User1.ID,
	})
	require.NoError(t, err)

	tx = xcontext.DB(ctx).Take(&user, "id=?", testutil.User1.ID)
	require.NoError(t, tx.Error)
	require.True(t, user.IsActive)

	var count int64
	tx = xcontext.DB(ctx).Model(&entity.ModerationAction{}).Count(&count)
	require.NoError(t, tx.Error)
	require.Equal(t, int64(2), count)
}

func Test_adminDomain_Moderate_warnRecordsOnly(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAdminDomain()

	_, err := domain.Moderate(ctx, &model.AdminModerateRequest{
		ActionType:   entity.ActionWarnUser,
		TargetUserID: testutil.User1.ID,
		Reason:       "be nice",
	})
	require.NoError(t, err)

	var user entity.User
	tx := xcontext.DB(ctx).Take(&user, "id=?", testutil.User1.ID)
	require.NoError(t, tx.Error)
	require.True(t, user.IsActive)

	var action entity.ModerationAction
	tx = xcontext.DB(ctx).Take(&action, "action_type=?", entity.ActionWarnUser)
	require.NoError(t, tx.Error)
	require.Equal(t, "be nice", action.Reason.String)
}

func Test_adminDomain_Moderate_invalidRequest(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAdminDomain()

	_, err := domain.Moderate(ctx, &model.AdminModerateRequest{ActionType: "SHADOW_BAN"})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)

	_, err = domain.Moderate(ctx, &model.AdminModerateRequest{ActionType: entity.ActionWarnUser})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)

	_, err = domain.Moderate(ctx, &model.AdminModerateRequest{ActionType: entity.ActionDeletePost})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)

	_, err = domain.Moderate(ctx, &model.AdminModerateRequest{
		ActionType:   entity.ActionBanUser,
		TargetUserID: "missing",
	})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_adminDomain_GetUsers(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAdminDomain()

	resp, err := domain.GetUsers(ctx, &model.AdminGetUsersRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(4), resp.Total)
	require.Len(t, resp.Users, 4)
}

func Test_adminDomain_GetActions(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestAdminDomain()

	_, err := domain.SetUserActive(ctx, &model.AdminSetUserActiveRequest{
		UserID: testutil.User1.ID,
		Active: false,
	})
	require.NoError(t, err)

	_, err = domain.DeletePost(ctx, &model.AdminDeletePostRequest{PostID: testutil.Post2.ID})
	require.NoError(t, err)

	resp, err := domain.GetActions(ctx, &model.AdminGetActionsRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.Total)
	require.Len(t, resp.Actions, 2)
}
