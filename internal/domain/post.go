package domain

import (
	"context"
	"database/sql"
	"errors"
	"unicode/utf8"

	"github.com/WeepingDogel/simple-social-board-api/internal/common"
	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/internal/model"
	"github.com/WeepingDogel/simple-social-board-api/internal/notification"
	"github.com/WeepingDogel/simple-social-board-api/internal/notification/event"
	"github.com/WeepingDogel/simple-social-board-api/internal/repository"
	"github.com/WeepingDogel/simple-social-board-api/internal/search"
	"github.com/WeepingDogel/simple-social-board-api/pkg/errorx"
	"github.com/WeepingDogel/simple-social-board-api/pkg/storage"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxPostLength = 4000

type PostDomain interface {
	Create(context.Context, *model.CreatePostRequest) (*model.CreatePostResponse, error)
	CreateWithImages(context.Context, *model.CreatePostWithImagesRequest) (*model.CreatePostWithImagesResponse, error)
	CreateReply(context.Context, *model.CreateReplyRequest) (*model.CreateReplyResponse, error)
	GetByID(context.Context, *model.GetPostRequest) (*model.GetPostResponse, error)
	GetFeed(context.Context, *model.GetFeedRequest) (*model.GetFeedResponse, error)
	GetListByUserID(context.Context, *model.GetUserPostsRequest) (*model.GetUserPostsResponse, error)
	GetReplies(context.Context, *model.GetRepliesRequest) (*model.GetRepliesResponse, error)
	Search(context.Context, *model.SearchPostsRequest) (*model.SearchPostsResponse, error)
	Delete(context.Context, *model.DeletePostRequest) (*model.DeletePostResponse, error)
}

type postDomain struct {
	postRepo        repository.PostRepository
	userRepo        repository.UserRepository
	userProfileRepo repository.UserProfileRepository
	likeRepo        repository.LikeRepository
	repostRepo      repository.RepostRepository
	mediaFileRepo   repository.MediaFileRepository
	searchCaller    search.Caller
	fileStorage     storage.Storage
	hub             *notification.Hub
}

func NewPostDomain(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	userProfileRepo repository.UserProfileRepository,
	likeRepo repository.LikeRepository,
	repostRepo repository.RepostRepository,
	mediaFileRepo repository.MediaFileRepository,
	searchCaller search.Caller,
	fileStorage storage.Storage,
	hub *notification.Hub,
) *postDomain {
	return &postDomain{
		postRepo:        postRepo,
		userRepo:        userRepo,
		userProfileRepo: userProfileRepo,
		likeRepo:        likeRepo,
		repostRepo:      repostRepo,
		mediaFileRepo:   mediaFileRepo,
		searchCaller:    searchCaller,
		fileStorage:     fileStorage,
		hub:             hub,
	}
}

func (d *postDomain) Create(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	resp, err := d.create(ctx, req.Content, req.ImageURLs)
	if err != nil {
		return nil, err
	}

	createResp := model.CreatePostResponse(*resp)
	return &createResp, nil
}

// CreateWithImages accepts a multipart form with a content field and
// repeated files parts, stores the images and creates the post in one
// request.
func (d *postDomain) CreateWithImages(
	ctx context.Context, req *model.CreatePostWithImagesRequest,
) (*model.CreatePostWithImagesResponse, error) {
	httpReq := xcontext.HTTPRequest(ctx)
	if err := httpReq.ParseMultipartForm(xcontext.Configs(ctx).File.MaxSize); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	content := httpReq.FormValue("content")

	imageURLs := []string{}
	if httpReq.MultipartForm != nil && len(httpReq.MultipartForm.File["files"]) > 0 {
		uploaded, err := common.ProcessImages(ctx, d.fileStorage, "files")
		if err != nil {
			return nil, err
		}

		files := make([]*entity.MediaFile, 0, len(uploaded))
		for _, img := range uploaded {
			imageURLs = append(imageURLs, img.Original.Url)
			files = append(files, &entity.MediaFile{
				Base:       entity.Base{ID: uuid.NewString()},
				Filename:   img.Filename,
				FilePath:   img.Original.FilePath,
				FileURL:    img.Original.Url,
				MimeType:   img.Mime,
				FileSize:   img.Size,
				UploaderID: xcontext.RequestUserID(ctx),
			})
		}

		if err := d.mediaFileRepo.BulkInsert(ctx, files); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot save media files: %v", err)
			return nil, errorx.Unknown
		}
	}

	resp, err := d.create(ctx, content, imageURLs)
	if err != nil {
		return nil, err
	}

	createResp := model.CreatePostWithImagesResponse(*resp)
	return &createResp, nil
}

func (d *postDomain) create(ctx context.Context, content string, imageURLs []string) (*model.Post, error) {
	if err := validatePostContent(content); err != nil {
		return nil, err
	}

	maxImages := xcontext.Configs(ctx).File.MaxImages
	if len(imageURLs) > maxImages {
		return nil, errorx.New(errorx.BadRequest, "Cannot attach more than %d images", maxImages)
	}

	requestUserID := xcontext.RequestUserID(ctx)
	post := &entity.Post{
		Base:     entity.Base{ID: uuid.NewString()},
		AuthorID: requestUserID,
		Content:  content,
	}

	for i, url := range imageURLs {
		post.Images = append(post.Images, entity.PostImage{
			Base:     entity.Base{ID: uuid.NewString()},
			PostID:   post.ID,
			ImageURL: url,
			Position: i,
		})
	}

	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	err := d.searchCaller.IndexPost(ctx, post.ID, search.PostData{Content: post.Content})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot index post %s: %v", post.ID, err)
	}

	modelPost := model.ConvertPost(post)
	d.hub.Broadcast(event.New(&event.NewPostEvent{
		Post:   modelPost,
		Author: d.shortUser(ctx, requestUserID),
	}))

	return &modelPost, nil
}

func (d *postDomain) CreateReply(
	ctx context.Context, req *model.CreateReplyRequest,
) (*model.CreateReplyResponse, error) {
	if err := validatePostContent(req.Content); err != nil {
		return nil, err
	}

	if req.ReplyToPostID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty post id")
	}

	parent, err := d.postRepo.GetByID(ctx, req.ReplyToPostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	requestUserID := xcontext.RequestUserID(ctx)
	reply := &entity.Post{
		Base:          entity.Base{ID: uuid.NewString()},
		AuthorID:      requestUserID,
		Content:       req.Content,
		ReplyToPostID: sql.NullString{Valid: true, String: parent.ID},
		ReplyAuthorID: sql.NullString{Valid: true, String: parent.AuthorID},
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.postRepo.Create(ctx, reply); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create reply: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.postRepo.IncreaseReplyCount(ctx, parent.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase reply count: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	err = d.searchCaller.IndexPost(ctx, reply.ID, search.PostData{Content: reply.Content})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot index reply %s: %v", reply.ID, err)
	}

	if parent.AuthorID != requestUserID {
		d.hub.SendToUser(parent.AuthorID, event.New(&event.NotificationEvent{
			Kind:    "reply",
			PostID:  parent.ID,
			ActorID: requestUserID,
			Message: "Someone replied to your post",
		}))
	}

	resp := model.CreateReplyResponse(model.ConvertPost(reply))
	return &resp, nil
}

func (d *postDomain) GetByID(
	ctx context.Context, req *model.GetPostRequest,
) (*model.GetPostResponse, error) {
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

	resp := model.GetPostResponse(model.ConvertPost(post))
	return &resp, nil
}

func (d *postDomain) GetFeed(
	ctx context.Context, req *model.GetFeedRequest,
) (*model.GetFeedResponse, error) {
	offset, limit, err := common.Pagination(ctx, req.Page, req.Limit)
	if err != nil {
		return nil, err
	}

	posts, err := d.postRepo.GetFeed(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get feed: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetFeedResponse{Posts: model.ConvertPosts(posts)}, nil
}

func (d *postDomain) GetListByUserID(
	ctx context.Context, req *model.GetUserPostsRequest,
) (*model.GetUserPostsResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	offset, limit, err := common.Pagination(ctx, req.Page, req.Limit)
	if err != nil {
		return nil, err
	}

	posts, err := d.postRepo.GetListByAuthorID(ctx, req.UserID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user posts: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUserPostsResponse{Posts: model.ConvertPosts(posts)}, nil
}

func (d *postDomain) GetReplies(
	ctx context.Context, req *model.GetRepliesRequest,
) (*model.GetRepliesResponse, error) {
	if req.PostID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty post id")
	}

	offset, limit, err := common.Pagination(ctx, req.Page, req.Limit)
	if err != nil {
		return nil, err
	}

	if _, err := d.postRepo.GetByID(ctx, req.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	replies, err := d.postRepo.GetReplies(ctx, req.PostID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get replies: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetRepliesResponse{Posts: model.ConvertPosts(replies)}, nil
}

func (d *postDomain) Search(
	ctx context.Context, req *model.SearchPostsRequest,
) (*model.SearchPostsResponse, error) {
	if req.Q == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty query")
	}

	offset, limit, err := common.Pagination(ctx, req.Page, req.Limit)
	if err != nil {
		return nil, err
	}

	ids, err := d.searchCaller.SearchPost(ctx, req.Q, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search posts: %v", err)
		return nil, errorx.Unknown
	}

	posts, err := d.postRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
		return nil, errorx.Unknown
	}

	// Keep the relevance order returned by the index.
	postMap := map[string]entity.Post{}
	for _, p := range posts {
		postMap[p.ID] = p
	}

	ordered := []model.Post{}
	for _, id := range ids {
		if p, ok := postMap[id]; ok {
			ordered = append(ordered, model.ConvertPost(&p))
		}
	}

	return &model.SearchPostsResponse{Posts: ordered}, nil
}

func (d *postDomain) Delete(
	ctx context.Context, req *model.DeletePostRequest,
) (*model.DeletePostResponse, error) {
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

	if post.AuthorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete this post")
	}

	err = deletePostCascade(ctx, d.postRepo, d.likeRepo, d.repostRepo, d.searchCaller, post)
	if err != nil {
		return nil, err
	}

	return &model.DeletePostResponse{Message: "Post deleted"}, nil
}

// deletePostCascade removes a post with all its dependents and keeps the
// denormalized counters of related posts correct. It is shared with the
// moderation endpoint.
func deletePostCascade(
	ctx context.Context,
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	repostRepo repository.RepostRepository,
	searchCaller search.Caller,
	post *entity.Post,
) error {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := likeRepo.DeleteByPostID(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete likes: %v", err)
		return errorx.Unknown
	}

	if err := repostRepo.DeleteByPostID(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete reposts: %v", err)
		return errorx.Unknown
	}

	copies, err := postRepo.DeleteRepostCopies(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete repost copies: %v", err)
		return errorx.Unknown
	}

	if post.ReplyToPostID.Valid {
		err := postRepo.DecreaseReplyCount(ctx, post.ReplyToPostID.String)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot decrease reply count: %v", err)
			return errorx.Unknown
		}
	}

	if err := postRepo.DeleteByID(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete post: %v", err)
		return errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	if err := searchCaller.DeletePost(ctx, post.ID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot remove post %s from index: %v", post.ID, err)
	}

	for _, c := range copies {
		if err := searchCaller.DeletePost(ctx, c.ID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot remove post %s from index: %v", c.ID, err)
		}
	}

	return nil
}

func (d *postDomain) shortUser(ctx context.Context, userID string) model.ShortUser {
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get user %s: %v", userID, err)
		return model.ShortUser{ID: userID}
	}

	profile, err := d.userProfileRepo.GetByUserID(ctx, userID)
	if err != nil {
		profile = nil
	}

	return model.ConvertShortUser(user, profile)
}

func validatePostContent(content string) error {
	if content == "" {
		return errorx.New(errorx.BadRequest, "Not allow empty content")
	}

	if utf8.RuneCountInString(content) > maxPostLength {
		return errorx.New(errorx.BadRequest,
			"Content must have at most %d characters", maxPostLength)
	}

	return nil
}
