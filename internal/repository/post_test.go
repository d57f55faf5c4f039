package repository_test

import (
	"errors"
	"testing"

	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/internal/repository"
	"github.com/WeepingDogel/simple-social-board-api/pkg/testutil"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_postRepository_updateCounter(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewPostRepository()

	require.NoError(t, repo.IncreaseLikeCount(ctx, testutil.Post1.ID))
	require.NoError(t, repo.IncreaseLikeCount(ctx, testutil.Post1.ID))

	var post entity.Post
	tx := xcontext.DB(ctx).Take(&post, "id=?", testutil.Post1.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, 2, post.LikeCount)

	require.NoError(t, repo.DecreaseLikeCount(ctx, testutil.Post1.ID))
	require.NoError(t, repo.DecreaseLikeCount(ctx, testutil.Post1.ID))

	// Decreasing at zero clamps instead of going negative.
	require.NoError(t, repo.DecreaseLikeCount(ctx, testutil.Post1.ID))

	tx = xcontext.DB(ctx).Take(&post, "id=?", testutil.Post1.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, 0, post.LikeCount)

	err := repo.IncreaseLikeCount(ctx, "missing")
	require.Error(t, err)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func Test_postRepository_GetFeed(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewPostRepository()

	posts, err := repo.GetFeed(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	posts, err = repo.GetFeed(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
}
