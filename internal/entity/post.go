package entity

import "database/sql"

type Post struct {
	Base
	AuthorID string `gorm:"not null;index"`
	Author   User   `gorm:"foreignKey:AuthorID"`

	Content string `gorm:"type:text;not null"`

	LikeCount   int `gorm:"default:0"`
	RepostCount int `gorm:"default:0"`
	ReplyCount  int `gorm:"default:0"`

	// Set on the copy created by a repost.
	OriginalPostID sql.NullString `gorm:"index"`

	// Set on replies. Null means a top-level post.
	ReplyToPostID sql.NullString `gorm:"index"`
	ReplyAuthorID sql.NullString

	Images []PostImage `gorm:"foreignKey:PostID"`
}

type PostImage struct {
	Base
	PostID   string `gorm:"not null;index"`
	ImageURL string `gorm:"not null"`
	Position int    `gorm:"default:0"`
}
