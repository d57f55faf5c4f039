package main

import (
	"context"
	"net/http"
	"time"

	"github.com/WeepingDogel/simple-social-board-api/config"
	"github.com/WeepingDogel/simple-social-board-api/internal/domain"
	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/internal/notification"
	"github.com/WeepingDogel/simple-social-board-api/internal/repository"
	"github.com/WeepingDogel/simple-social-board-api/internal/search"
	"github.com/WeepingDogel/simple-social-board-api/pkg/logger"
	"github.com/WeepingDogel/simple-social-board-api/pkg/router"
	"github.com/WeepingDogel/simple-social-board-api/pkg/storage"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB

	fileStorage  storage.Storage
	searchCaller search.Caller
	hub          *notification.Hub

	userRepo             repository.UserRepository
	userProfileRepo      repository.UserProfileRepository
	postRepo             repository.PostRepository
	likeRepo             repository.LikeRepository
	repostRepo           repository.RepostRepository
	followerRepo         repository.FollowerRepository
	mediaFileRepo        repository.MediaFileRepository
	moderationActionRepo repository.ModerationActionRepository

	authDomain        domain.AuthDomain
	userProfileDomain domain.UserProfileDomain
	postDomain        domain.PostDomain
	interactionDomain domain.InteractionDomain
	followerDomain    domain.FollowerDomain
	fileDomain        domain.FileDomain
	adminDomain       domain.AdminDomain
	statisticDomain   domain.StatisticDomain
	wsDomain          domain.WsDomain

	router *router.Router
	server *http.Server
}

func (s *srv) baseContext() context.Context {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	if s.db != nil {
		ctx = xcontext.WithDB(ctx, s.db)
	}

	return ctx
}

func (s *srv) loadConfig() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	s.configs = cfg
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger()
}

func (s *srv) loadDatabase() {
	var err error
	retries := s.configs.Database.ConnectRetries
	backoff := s.configs.Database.ConnectBackoff

	for i := 0; ; i++ {
		s.db, err = gorm.Open(mysql.New(mysql.Config{
			DSN:                       s.configs.Database.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		}), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}

		if i >= retries {
			panic(err)
		}

		s.logger.Warnf("Cannot connect to database, retry in %s: %v", backoff, err)
		time.Sleep(backoff)
	}

	if err := entity.MigrateTable(s.baseContext()); err != nil {
		panic(err)
	}
}

func (s *srv) loadStorage() {
	fileStorage, err := storage.NewDiskStorage(s.configs.File)
	if err != nil {
		panic(err)
	}

	s.fileStorage = fileStorage
}

func (s *srv) loadSearch() {
	s.searchCaller = search.NewBleveIndex(s.baseContext())
}

func (s *srv) loadHub() {
	s.hub = notification.NewHub(s.baseContext())
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.userProfileRepo = repository.NewUserProfileRepository()
	s.postRepo = repository.NewPostRepository()
	s.likeRepo = repository.NewLikeRepository()
	s.repostRepo = repository.NewRepostRepository()
	s.followerRepo = repository.NewFollowerRepository()
	s.mediaFileRepo = repository.NewMediaFileRepository()
	s.moderationActionRepo = repository.NewModerationActionRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo, s.userProfileRepo)
	s.userProfileDomain = domain.NewUserProfileDomain(s.userProfileRepo)
	s.postDomain = domain.NewPostDomain(
		s.postRepo, s.userRepo, s.userProfileRepo, s.likeRepo, s.repostRepo,
		s.mediaFileRepo, s.searchCaller, s.fileStorage, s.hub)
	s.interactionDomain = domain.NewInteractionDomain(
		s.postRepo, s.likeRepo, s.repostRepo, s.searchCaller, s.hub)
	s.followerDomain = domain.NewFollowerDomain(s.followerRepo, s.userRepo, s.userProfileRepo)
	s.fileDomain = domain.NewFileDomain(s.mediaFileRepo, s.fileStorage)
	s.adminDomain = domain.NewAdminDomain(
		s.userRepo, s.postRepo, s.likeRepo, s.repostRepo, s.moderationActionRepo, s.searchCaller)
	s.statisticDomain = domain.NewStatisticDomain()
	s.wsDomain = domain.NewWsDomain(s.hub)
}
