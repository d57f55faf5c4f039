package testutil

import (
	"context"

	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/internal/repository"
	"github.com/WeepingDogel/simple-social-board-api/pkg/crypto"
)

const Password = "Password123"

var (
	User1 = entity.User{
		Base:     entity.Base{ID: "user1"},
		Email:    "user1@example.com",
		Username: "user1",
		IsActive: true,
	}

	User2 = entity.User{
		Base:     entity.Base{ID: "user2"},
		Email:    "user2@example.com",
		Username: "user2",
		IsActive: true,
	}

	Admin = entity.User{
		Base:     entity.Base{ID: "admin"},
		Email:    "admin@example.com",
		Username: "admin",
		IsActive: true,
		IsAdmin:  true,
	}

	BannedUser = entity.User{
		Base:     entity.Base{ID: "banned"},
		Email:    "banned@example.com",
		Username: "banned",
		IsActive: false,
	}

	Post1 = entity.Post{
		Base:     entity.Base{ID: "post1"},
		AuthorID: User1.ID,
		Content:  "hello from user1",
	}

	Post2 = entity.Post{
		Base:     entity.Base{ID: "post2"},
		AuthorID: User2.ID,
		Content:  "hello from user2",
	}
)

func CreateFixtureDb(ctx context.Context) {
	insertUsers(ctx)
	insertPosts(ctx)
}

func insertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewUserProfileRepository()

	hashed, err := crypto.HashPassword(Password)
	if err != nil {
		panic(err)
	}

	for _, user := range []entity.User{User1, User2, Admin, BannedUser} {
		user.HashedPassword = hashed
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}

		err := profileRepo.Create(ctx, &entity.UserProfile{
			Base:            entity.Base{ID: "profile_" + user.ID},
			UserID:          user.ID,
			DisplayName:     user.Username,
			BackgroundColor: "#ffffff",
		})
		if err != nil {
			panic(err)
		}
	}
}

func insertPosts(ctx context.Context) {
	postRepo := repository.NewPostRepository()
	for _, post := range []entity.Post{Post1, Post2} {
		if err := postRepo.Create(ctx, &post); err != nil {
			panic(err)
		}
	}
}
