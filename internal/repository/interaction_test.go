package repository_test

import (
	"errors"
	"testing"

	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/internal/repository"
	"github.com/WeepingDogel/simple-social-board-api/pkg/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_likeRepository_duplicateInsert(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewLikeRepository()

	err := repo.Create(ctx, &entity.Like{
		Base:   entity.Base{ID: "like_1"},
		UserID: testutil.User1.ID,
		PostID: testutil.Post1.ID,
	})
	require.NoError(t, err)

	err = repo.Create(ctx, &entity.Like{
		Base:   entity.Base{ID: "like_2"},
		UserID: testutil.User1.ID,
		PostID: testutil.Post1.ID,
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func Test_followerRepository_duplicateInsert(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewFollowerRepository()

	err := repo.Create(ctx, &entity.Follower{
		Base:        entity.Base{ID: "follower_1"},
		FollowerID:  testutil.User1.ID,
		FollowingID: testutil.User2.ID,
	})
	require.NoError(t, err)

	err = repo.Create(ctx, &entity.Follower{
		Base:        entity.Base{ID: "follower_2"},
		FollowerID:  testutil.User1.ID,
		FollowingID: testutil.User2.ID,
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}
