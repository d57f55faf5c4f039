package event

import "github.com/WeepingDogel/simple-social-board-api/internal/model"

// NEW POST EVENT
type NewPostEvent struct {
	Post   model.Post      `json:"post"`
	Author model.ShortUser `json:"author"`
}

func (*NewPostEvent) Type() string {
	return "new_post"
}

// NEW LIKE EVENT
type NewLikeEvent struct {
	PostID    string `json:"post_id"`
	UserID    string `json:"user_id"`
	LikeCount int    `json:"like_count"`
}

func (*NewLikeEvent) Type() string {
	return "new_like"
}

// NEW REPOST EVENT
type NewRepostEvent struct {
	PostID      string     `json:"post_id"`
	UserID      string     `json:"user_id"`
	RepostCount int        `json:"repost_count"`
	Post        model.Post `json:"post"`
}

func (*NewRepostEvent) Type() string {
	return "new_repost"
}
