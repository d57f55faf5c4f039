package domain

import (
	"testing"

	"github.com/WeepingDogel/simple-social-board-api/internal/model"
	"github.com/WeepingDogel/simple-social-board-api/internal/repository"
	"github.com/WeepingDogel/simple-social-board-api/pkg/errorx"
	"github.com/WeepingDogel/simple-social-board-api/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func Test_userProfileDomain_GetMe(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := NewUserProfileDomain(repository.NewUserProfileRepository())

	resp, err := domain.GetMe(ctx, &model.GetMyProfileRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.UserID)
	require.Equal(t, testutil.User1.Username, resp.DisplayName)
	require.Equal(t, "#ffffff", resp.BackgroundColor)
}

func Test_userProfileDomain_GetByUserID(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewUserProfileDomain(repository.NewUserProfileRepository())

	resp, err := domain.GetByUserID(ctx, &model.GetProfileRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, resp.UserID)

	_, err = domain.GetByUserID(ctx, &model.GetProfileRequest{UserID: "missing"})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_userProfileDomain_Update(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := NewUserProfileDomain(repository.NewUserProfileRepository())

	resp, err := domain.Update(ctx, &model.UpdateProfileRequest{
		DisplayName:     "First User",
		AvatarURL:       "/static/media/avatar.png",
		BackgroundColor: "#abc",
		Bio:             "hello there",
	})
	require.NoError(t, err)
	require.Equal(t, "First User", resp.DisplayName)
	require.Equal(t, "/static/media/avatar.png", resp.AvatarURL)
	require.Equal(t, "#abc", resp.BackgroundColor)
	require.Equal(t, "hello there", resp.Bio)
}

func Test_userProfileDomain_Update_invalidInput(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := NewUserProfileDomain(repository.NewUserProfileRepository())

	longBio := make([]rune, maxBioLength+1)
	for i := range longBio {
		longBio[i] = 'x'
	}

	_, err := domain.Update(ctx, &model.UpdateProfileRequest{Bio: string(longBio)})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)

	_, err = domain.Update(ctx, &model.UpdateProfileRequest{BackgroundColor: "red"})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
}

func Test_userProfileDomain_UpdateByUserID(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Admin.ID)
	testutil.CreateFixtureDb(ctx)
	domain := NewUserProfileDomain(repository.NewUserProfileRepository())

	resp, err := domain.UpdateByUserID(ctx, &model.UpdateProfileByIDRequest{
		UserID:      testutil.User2.ID,
		DisplayName: "Renamed",
	})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, resp.UserID)
	require.Equal(t, "Renamed", resp.DisplayName)

	_, err = domain.UpdateByUserID(ctx, &model.UpdateProfileByIDRequest{
		UserID: "missing",
	})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}
