package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/WeepingDogel/simple-social-board-api/internal/middleware"
	"github.com/WeepingDogel/simple-social-board-api/pkg/prometheus"
	"github.com/WeepingDogel/simple-social-board-api/pkg/router"
	"github.com/rs/cors"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(ct *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadStorage()
	s.loadSearch()
	s.loadHub()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: cors.AllowAll().Handler(s.router.Handler()),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		s.logger.Infof("Starting server on %s", s.configs.ApiServer.Address())
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Errorf("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	s.logger.Infof("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Errorf("Cannot shutdown server gracefully: %v", err)
	}

	s.hub.Shutdown(shutdownCtx)
	s.searchCaller.Close()
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())
	s.router.Handle("/metrics", prometheus.NewHandler())
	s.router.Static("/static/media/", s.configs.File.MediaDir)

	// Public API
	publicRouter := s.router.Branch()
	{
		router.GET(publicRouter, "/", s.statisticDomain.GetRoot)
		router.GET(publicRouter, "/api/health", s.statisticDomain.GetHealth)

		router.POST(publicRouter, "/api/auth/register", s.authDomain.Register)
		router.POST(publicRouter, "/api/auth/token", s.authDomain.Token)
		router.POST(publicRouter, "/api/auth/login", s.authDomain.Login)

		router.GET(publicRouter, "/api/posts", s.postDomain.GetFeed)
		router.GET(publicRouter, "/api/posts/search", s.postDomain.Search)
		router.GET(publicRouter, "/api/posts/{post_id}", s.postDomain.GetByID)
		router.GET(publicRouter, "/api/posts/{post_id}/replies", s.postDomain.GetReplies)
		router.GET(publicRouter, "/api/users/{user_id}/posts", s.postDomain.GetListByUserID)

		router.GET(publicRouter, "/api/profiles/{user_id}", s.userProfileDomain.GetByUserID)
		router.GET(publicRouter, "/api/users/{user_id}/followers", s.followerDomain.GetFollowers)
		router.GET(publicRouter, "/api/users/{user_id}/following", s.followerDomain.GetFollowing)
	}

	// These following APIs need authentication with an active account.
	authRouter := s.router.Branch()
	authVerifier := middleware.NewAuthVerifier().WithAccessToken().WithActiveUser(s.userRepo)
	authRouter.Before(authVerifier.Middleware())
	{
		router.GET(authRouter, "/api/auth/me", s.authDomain.GetMe)

		router.GET(authRouter, "/api/profiles/me", s.userProfileDomain.GetMe)
		router.PUT(authRouter, "/api/profiles/me", s.userProfileDomain.Update)

		router.POST(authRouter, "/api/posts", s.postDomain.Create)
		router.POST(authRouter, "/api/posts/with-images", s.postDomain.CreateWithImages)
		router.POST(authRouter, "/api/posts/{reply_to_post_id}/replies", s.postDomain.CreateReply)
		router.DELETE(authRouter, "/api/posts/{post_id}", s.postDomain.Delete)

		router.POST(authRouter, "/api/posts/{post_id}/like", s.interactionDomain.Like)
		router.DELETE(authRouter, "/api/posts/{post_id}/like", s.interactionDomain.Unlike)
		router.POST(authRouter, "/api/posts/{post_id}/repost", s.interactionDomain.Repost)

		router.POST(authRouter, "/api/users/{user_id}/follow", s.followerDomain.Follow)
		router.DELETE(authRouter, "/api/users/{user_id}/follow", s.followerDomain.Unfollow)
		router.GET(authRouter, "/api/users/{user_id}/is-following", s.followerDomain.IsFollowing)

		router.POST(authRouter, "/api/media/upload", s.fileDomain.UploadImage)
		router.POST(authRouter, "/api/media/upload-multiple", s.fileDomain.UploadImages)

		authRouter.Websocket("/api/ws/notifications", s.wsDomain.ServeNotifications)
	}

	// The firehose socket works without a token, but a provided token must
	// still be valid.
	wsRouter := s.router.Branch()
	wsRouter.Before(middleware.NewAuthVerifier().WithAccessToken().WithOptional().Middleware())
	{
		wsRouter.Websocket("/api/ws", s.wsDomain.ServeFeed)
	}

	// Admin API
	adminRouter := authRouter.Branch()
	adminRouter.Before(middleware.NewOnlyAdmin(s.userRepo).Middleware())
	{
		router.GET(adminRouter, "/api/admin/users", s.adminDomain.GetUsers)
		router.GET(adminRouter, "/api/admin/actions", s.adminDomain.GetActions)
		router.POST(adminRouter, "/api/admin/moderate", s.adminDomain.Moderate)
		router.DELETE(adminRouter, "/api/admin/posts/{post_id}", s.adminDomain.DeletePost)
		router.PUT(adminRouter, "/api/admin/users/{user_id}/active", s.adminDomain.SetUserActive)
		router.PUT(adminRouter, "/api/admin/users/{user_id}/admin", s.adminDomain.SetUserAdmin)
		router.PUT(adminRouter, "/api/admin/profiles/{user_id}", s.userProfileDomain.UpdateByUserID)
	}
}
