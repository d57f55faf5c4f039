package domain

import (
	"context"
	"testing"

	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/internal/model"
	"github.com/WeepingDogel/simple-social-board-api/internal/notification"
	"github.com/WeepingDogel/simple-social-board-api/internal/repository"
	"github.com/WeepingDogel/simple-social-board-api/pkg/errorx"
	"github.com/WeepingDogel/simple-social-board-api/pkg/testutil"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newTestInteractionDomain(ctx context.Context) *interactionDomain {
	return NewInteractionDomain(
		repository.NewPostRepository(),
		repository.NewLikeRepository(),
		repository.NewRepostRepository(),
		&testutil.MockSearchCaller{},
		notification.NewHub(ctx),
	)
}

func Test_interactionDomain_Like(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestInteractionDomain(ctx)

	resp, err := domain.Like(ctx, &model.LikePostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, resp.UserID)
	require.Equal(t, testutil.Post1.ID, resp.PostID)

	var post entity.Post
	tx := xcontext.DB(ctx).Take(&post, "id=?", testutil.Post1.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, 1, post.LikeCount)

	// Liking the same post twice must be rejected.
	_, err = domain.Like(ctx, &model.LikePostRequest{PostID: testutil.Post1.ID})
	require.Error(t, err)
	require.Equal(t, errorx.AlreadyExists, err.(errorx.Error).Code)
}

func Test_interactionDomain_Like_notFoundPost(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestInteractionDomain(ctx)

	_, err := domain.Like(ctx, &model.LikePostRequest{PostID: "missing"})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_interactionDomain_Unlike(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestInteractionDomain(ctx)

	_, err := domain.Like(ctx, &model.LikePostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	_, err = domain.Unlike(ctx, &model.UnlikePostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	var post entity.Post
	tx := xcontext.DB(ctx).Take(&post, "id=?", testutil.Post1.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, 0, post.LikeCount)

	var count int64
	tx = xcontext.DB(ctx).Model(&entity.Like{}).
		Where("user_id=? AND post_id=?", testutil.User2.ID, testutil.Post1.ID).
		Count(&count)
	require.NoError(t, tx.Error)
	require.Equal(t, int64(0), count)
}

func Test_interactionDomain_Unlike_notLiked(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestInteractionDomain(ctx)

	_, err := domain.Unlike(ctx, &model.UnlikePostRequest{PostID: testutil.Post1.ID})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)
}

func Test_interactionDomain_Repost(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestInteractionDomain(ctx)

	resp, err := domain.Repost(ctx, &model.RepostPostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, resp.UserID)
	require.Equal(t, testutil.Post1.ID, resp.PostID)

	var original entity.Post
	tx := xcontext.DB(ctx).Take(&original, "id=?", testutil.Post1.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, 1, original.RepostCount)

	var repostCopy entity.Post
	tx = xcontext.DB(ctx).Take(&repostCopy, "original_post_id=?", testutil.Post1.ID)
	require.NoError(t, tx.Error)
	require.Equal(t, testutil.User2.ID, repostCopy.AuthorID)
	require.Equal(t, testutil.Post1.Content, repostCopy.Content)

	// Reposting the same post twice must be rejected.
	_, err = domain.Repost(ctx, &model.RepostPostRequest{PostID: testutil.Post1.ID})
	require.Error(t, err)
	require.Equal(t, errorx.AlreadyExists, err.(errorx.Error).Code)
}

func Test_interactionDomain_Repost_ofRepost(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestInteractionDomain(ctx)

	_, err := domain.Repost(ctx, &model.RepostPostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	var repostCopy entity.Post
	tx := xcontext.DB(ctx).Take(&repostCopy, "original_post_id=?", testutil.Post1.ID)
	require.NoError(t, tx.Error)

	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err = domain.Repost(ctx, &model.RepostPostRequest{PostID: repostCopy.ID})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
}

func Test_interactionDomain_Repost_deleteOriginalRemovesCopy(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestInteractionDomain(ctx)

	_, err := domain.Repost(ctx, &model.RepostPostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	postDomain := newTestPostDomain(ctx, nil)
	ctx = xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err = postDomain.Delete(ctx, &model.DeletePostRequest{PostID: testutil.Post1.ID})
	require.NoError(t, err)

	var count int64
	tx := xcontext.DB(ctx).Model(&entity.Post{}).
		Where("original_post_id=?", testutil.Post1.ID).
		Count(&count)
	require.NoError(t, tx.Error)
	require.Equal(t, int64(0), count)

	tx = xcontext.DB(ctx).Model(&entity.Repost{}).
		Where("post_id=?", testutil.Post1.ID).
		Count(&count)
	require.NoError(t, tx.Error)
	require.Equal(t, int64(0), count)
}
