package model

type Post struct {
	ID             string   `json:"id"`
	Content        string   `json:"content"`
	AuthorID       string   `json:"author_id"`
	LikeCount      int      `json:"like_count"`
	RepostCount    int      `json:"repost_count"`
	ReplyCount     int      `json:"reply_count"`
	OriginalPostID string   `json:"original_post_id,omitempty"`
	ReplyToPostID  string   `json:"reply_to_post_id,omitempty"`
	Images         []string `json:"images"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

type Like struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	PostID    string `json:"post_id"`
	CreatedAt string `json:"created_at"`
}

type Repost struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	PostID    string `json:"post_id"`
	CreatedAt string `json:"created_at"`
}

type CreatePostRequest struct {
	Content   string   `json:"content"`
	ImageURLs []string `json:"image_urls"`
}

type CreatePostResponse Post

// CreatePostWithImagesRequest is bound from multipart form data: a "content"
// field plus up to the configured maximum of "files" parts.
type CreatePostWithImagesRequest struct{}

type CreatePostWithImagesResponse Post

type CreateReplyRequest struct {
	Content       string `json:"content"`
	ReplyToPostID string `json:"reply_to_post_id"`
}

type CreateReplyResponse Post

type GetPostRequest struct {
	PostID string `json:"post_id"`
}

type GetPostResponse Post

type GetFeedRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type GetFeedResponse struct {
	Posts []Post `json:"posts"`
}

type GetUserPostsRequest struct {
	UserID string `json:"user_id"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

type GetUserPostsResponse struct {
	Posts []Post `json:"posts"`
}

type GetRepliesRequest struct {
	PostID string `json:"post_id"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

type GetRepliesResponse struct {
	Posts []Post `json:"posts"`
}

type SearchPostsRequest struct {
	Q     string `json:"q"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

type SearchPostsResponse struct {
	Posts []Post `json:"posts"`
}

type DeletePostRequest struct {
	PostID string `json:"post_id"`
}

type DeletePostResponse struct {
	Message string `json:"message"`
}

type LikePostRequest struct {
	PostID string `json:"post_id"`
}

type LikePostResponse Like

type UnlikePostRequest struct {
	PostID string `json:"post_id"`
}

type UnlikePostResponse struct {
	Message string `json:"message"`
}

type RepostPostRequest struct {
	PostID string `json:"post_id"`
}

type RepostPostResponse Repost
