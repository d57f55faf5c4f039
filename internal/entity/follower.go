package entity

type Follower struct {
	Base
	FollowerID  string `gorm:"not null;uniqueIndex:idx_follower_following"`
	FollowingID string `gorm:"not null;uniqueIndex:idx_follower_following;index"`

	FollowerUser  User `gorm:"foreignKey:FollowerID"`
	FollowingUser User `gorm:"foreignKey:FollowingID"`
}
