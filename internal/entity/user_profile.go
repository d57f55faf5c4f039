package entity

type UserProfile struct {
	Base
	UserID string `gorm:"unique;not null"`
	User   User   `gorm:"foreignKey:UserID"`

	DisplayName     string
	AvatarURL       string
	BackgroundColor string `gorm:"default:#ffffff"`
	Bio             string `gorm:"size:160"`

	// Denormalized counters, kept in sync with the followers table by the
	// follower domain. Never updated anywhere else.
	FollowerCount  int `gorm:"default:0"`
	FollowingCount int `gorm:"default:0"`
}
