package repository_test

import (
	"testing"

	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/internal/repository"
	"github.com/WeepingDogel/simple-social-board-api/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func Test_userRepository_inactiveRoundTrip(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewUserRepository()

	err := repo.Create(ctx, &entity.User{
		Base:           entity.Base{ID: "inactive"},
		Email:          "inactive@example.com",
		Username:       "inactive",
		HashedPassword: "x",
		IsActive:       false,
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, "inactive")
	require.NoError(t, err)
	require.False(t, stored.IsActive)

	require.NoError(t, repo.SetActive(ctx, "inactive", true))

	stored, err = repo.GetByID(ctx, "inactive")
	require.NoError(t, err)
	require.True(t, stored.IsActive)

	require.NoError(t, repo.SetActive(ctx, "inactive", false))

	stored, err = repo.GetByID(ctx, "inactive")
	require.NoError(t, err)
	require.False(t, stored.IsActive)
}
