package entity

type Like struct {
	Base
	UserID string `gorm:"not null;uniqueIndex:idx_like_user_post"`
	PostID string `gorm:"not null;uniqueIndex:idx_like_user_post;index"`
}

type Repost struct {
	Base
	UserID string `gorm:"not null;uniqueIndex:idx_repost_user_post"`
	PostID string `gorm:"not null;uniqueIndex:idx_repost_user_post;index"`
}
