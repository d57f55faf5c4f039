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

func newTestFollowerDomain() *followerDomain {
	return NewFollowerDomain(
		repository.NewFollowerRepository(),
		repository.NewUserRepository(),
		repository.NewUserProfileRepository(),
	)
}

func Test_followerDomain_Follow(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestFollowerDomain()

	_, err := domain.Follow(ctx, &model.FollowUserRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	var target entity.UserProfile
	tx := xcontext.DB(ctx).Take(&target, "user_id=?", testutil.User2.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, 1, target.FollowerCount)
	require.Equal(t, 0, target.FollowingCount)

	var self entity.UserProfile
	tx = xcontext.DB(ctx).Take(&self, "user_id=?", testutil.User1.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, 0, self.FollowerCount)
	require.Equal(t, 1, self.FollowingCount)

	// Following the same user twice must be rejected.
	_, err = domain.Follow(ctx, &model.FollowUserRequest{UserID: testutil.User2.ID})
	require.Error(t, err)
	require.Equal(t, errorx.AlreadyExists, err.(errorx.Error).Code)
}

func Test_followerDomain_Follow_invalidTarget(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestFollowerDomain()

	_, err := domain.Follow(ctx, &model.FollowUserRequest{UserID: testutil.User1.ID})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)

	_, err = domain.Follow(ctx, &model.FollowUserRequest{UserID: "missing"})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_followerDomain_Unfollow(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestFollowerDomain()

	_, err := domain.Follow(ctx, &model.FollowUserRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	_, err = domain.Unfollow(ctx, &model.UnfollowUserRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	var target entity.UserProfile
	tx := xcontext.DB(ctx).Take(&target, "user_id=?", testutil.User2.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, 0, target.FollowerCount)

	var self entity.UserProfile
	tx = xcontext.DB(ctx).Take(&self, "user_id=?", testutil.User1.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, 0, self.FollowingCount)
}

func Test_followerDomain_Unfollow_notFollowing(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestFollowerDomain()

	_, err := domain.Unfollow(ctx, &model.UnfollowUserRequest{UserID: testutil.User2.ID})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_followerDomain_GetFollowers(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestFollowerDomain()

	_, err := domain.Follow(ctx, &model.FollowUserRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	ctx = xcontext.WithRequestUserID(ctx, testutil.Admin.ID)
	_, err = domain.Follow(ctx, &model.FollowUserRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	resp, err := domain.GetFollowers(ctx, &model.GetFollowersRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.Total)
	require.Equal(t, 1, resp.Page)
	require.Equal(t, 1, resp.Pages)
	require.Len(t, resp.Items, 2)

	byID := map[string]model.ShortUser{}
	for _, item := range resp.Items {
		byID[item.ID] = item
	}

	require.Contains(t, byID, testutil.User1.ID)
	require.Contains(t, byID, testutil.Admin.ID)
	require.Equal(t, testutil.User1.Username, byID[testutil.User1.ID].DisplayName)
}

func Test_followerDomain_GetFollowing(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestFollowerDomain()

	_, err := domain.Follow(ctx, &model.FollowUserRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	_, err = domain.Follow(ctx, &model.FollowUserRequest{UserID: testutil.Admin.ID})
	require.NoError(t, err)

	resp, err := domain.GetFollowing(ctx, &model.GetFollowingRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.Total)
	require.Len(t, resp.Items, 2)

	var self entity.UserProfile
	tx := xcontext.DB(ctx).Take(&self, "user_id=?", testutil.User1.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, 2, self.FollowingCount)
}

func Test_followerDomain_IsFollowing(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestFollowerDomain()

	resp, err := domain.IsFollowing(ctx, &model.GetIsFollowingRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.False(t, resp.IsFollowing)

	_, err = domain.Follow(ctx, &model.FollowUserRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	resp, err = domain.IsFollowing(ctx, &model.GetIsFollowingRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.True(t, resp.IsFollowing)
}
