package entity_test

import (
	"testing"

	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/pkg/testutil"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func Test_MigrateTable_backfillsProfiles(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	err := xcontext.DB(ctx).Create(&entity.User{
		Base:           entity.Base{ID: "orphan"},
		Email:          "orphan@example.com",
		Username:       "orphan",
		HashedPassword: "x",
		IsActive:       true,
	}).Error
	require.NoError(t, err)

	require.NoError(t, entity.MigrateTable(ctx))

	var profile entity.UserProfile
	tx := xcontext.DB(ctx).Take(&profile, "user_id=?", "orphan")
	require.NoError(t, tx.Error)
	require.Equal(t, "orphan", profile.DisplayName)
	require.Equal(t, "#ffffff", profile.BackgroundColor)

	// Users that already have a profile are left alone.
	var count int64
	tx = xcontext.DB(ctx).Model(&entity.UserProfile{}).
		Where("user_id=?", testutil.User1.ID).Count(&count)
	require.NoError(t, tx.Error)
	require.Equal(t, int64(1), count)
}
