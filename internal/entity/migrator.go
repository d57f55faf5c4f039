package entity

import (
	"context"

	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
	"github.com/google/uuid"
)

func MigrateTable(ctx context.Context) error {
	err := xcontext.DB(ctx).AutoMigrate(
		&User{},
		&UserProfile{},
		&Post{},
		&PostImage{},
		&Like{},
		&Repost{},
		&Follower{},
		&MediaFile{},
		&ModerationAction{},
	)
	if err != nil {
		return err
	}

	return backfillProfiles(ctx)
}

// backfillProfiles creates a default profile for every user that has none.
// Registration creates both rows together, this covers databases written
// before it did.
func backfillProfiles(ctx context.Context) error {
	db := xcontext.DB(ctx)

	var users []User
	err := db.
		Where("id NOT IN (?)", db.Model(&UserProfile{}).Select("user_id")).
		Find(&users).Error
	if err != nil {
		return err
	}

	for _, user := range users {
		err := db.Create(&UserProfile{
			Base:            Base{ID: uuid.NewString()},
			UserID:          user.ID,
			DisplayName:     user.Username,
			BackgroundColor: "#ffffff",
		}).Error
		if err != nil {
			return err
		}
	}

	return nil
}
