package model

import (
	"time"

	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		IsActive:  user.IsActive,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertShortUser(user *entity.User, profile *entity.UserProfile) ShortUser {
	if user == nil {
		return ShortUser{}
	}

	shortUser := ShortUser{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt.Format(DefaultTimeLayout),
	}

	if profile != nil {
		shortUser.DisplayName = profile.DisplayName
		shortUser.AvatarURL = profile.AvatarURL
	}

	return shortUser
}

func ConvertProfile(profile *entity.UserProfile) Profile {
	if profile == nil {
		return Profile{}
	}

	return Profile{
		ID:              profile.ID,
		UserID:          profile.UserID,
		DisplayName:     profile.DisplayName,
		AvatarURL:       profile.AvatarURL,
		BackgroundColor: profile.BackgroundColor,
		Bio:             profile.Bio,
		FollowerCount:   profile.FollowerCount,
		FollowingCount:  profile.FollowingCount,
		CreatedAt:       profile.CreatedAt.Format(DefaultTimeLayout),
		UpdatedAt:       profile.UpdatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertPost(post *entity.Post) Post {
	if post == nil {
		return Post{}
	}

	images := []string{}
	for _, img := range post.Images {
		images = append(images, img.ImageURL)
	}

	return Post{
		ID:             post.ID,
		Content:        post.Content,
		AuthorID:       post.AuthorID,
		LikeCount:      post.LikeCount,
		RepostCount:    post.RepostCount,
		ReplyCount:     post.ReplyCount,
		OriginalPostID: post.OriginalPostID.String,
		ReplyToPostID:  post.ReplyToPostID.String,
		Images:         images,
		CreatedAt:      post.CreatedAt.Format(DefaultTimeLayout),
		UpdatedAt:      post.UpdatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertPosts(posts []entity.Post) []Post {
	modelPosts := []Post{}
	for i := range posts {
		modelPosts = append(modelPosts, ConvertPost(&posts[i]))
	}
	return modelPosts
}

func ConvertLike(like *entity.Like) Like {
	if like == nil {
		return Like{}
	}

	return Like{
		ID:        like.ID,
		UserID:    like.UserID,
		PostID:    like.PostID,
		CreatedAt: like.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertRepost(repost *entity.Repost) Repost {
	if repost == nil {
		return Repost{}
	}

	return Repost{
		ID:        repost.ID,
		UserID:    repost.UserID,
		PostID:    repost.PostID,
		CreatedAt: repost.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertMediaFile(file *entity.MediaFile) MediaFile {
	if file == nil {
		return MediaFile{}
	}

	return MediaFile{
		ID:        file.ID,
		Filename:  file.Filename,
		FileURL:   file.FileURL,
		MimeType:  file.MimeType,
		FileSize:  file.FileSize,
		CreatedAt: file.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertModerationAction(action *entity.ModerationAction) ModerationAction {
	if action == nil {
		return ModerationAction{}
	}

	return ModerationAction{
		ID:           action.ID,
		AdminID:      action.AdminID,
		ActionType:   action.ActionType,
		TargetUserID: action.TargetUserID.String,
		TargetPostID: action.TargetPostID.String,
		Reason:       action.Reason.String,
		CreatedAt:    action.CreatedAt.Format(DefaultTimeLayout),
	}
}
