package domain

import (
	"context"
	"errors"
	"net/mail"

	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/internal/model"
	"github.com/WeepingDogel/simple-social-board-api/internal/repository"
	"github.com/WeepingDogel/simple-social-board-api/pkg/crypto"
	"github.com/WeepingDogel/simple-social-board-api/pkg/errorx"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 30
	minPasswordLength = 8
)

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Token(context.Context, *model.TokenRequest) (*model.TokenResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
}

type authDomain struct {
	userRepo        repository.UserRepository
	userProfileRepo repository.UserProfileRepository
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	userProfileRepo repository.UserProfileRepository,
) *authDomain {
	return &authDomain{
		userRepo:        userRepo,
		userProfileRepo: userProfileRepo,
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid email address")
	}

	if len(req.Username) < minUsernameLength || len(req.Username) > maxUsernameLength {
		return nil, errorx.New(errorx.BadRequest,
			"Username must have from %d to %d characters", minUsernameLength, maxUsernameLength)
	}

	if len(req.Password) < minPasswordLength {
		return nil, errorx.New(errorx.BadRequest,
			"Password must have at least %d characters", minPasswordLength)
	}

	if _, err := d.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by username: %v", err)
		return nil, errorx.Unknown
	}

	hashedPassword, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash the password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:           entity.Base{ID: uuid.NewString()},
		Email:          req.Email,
		Username:       req.Username,
		HashedPassword: hashedPassword,
		IsActive:       true,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	profile := &entity.UserProfile{
		Base:            entity.Base{ID: uuid.NewString()},
		UserID:          user.ID,
		DisplayName:     user.Username,
		BackgroundColor: "#ffffff",
	}

	if err := d.userProfileRepo.Create(ctx, profile); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user profile: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	resp := model.RegisterResponse(model.ConvertUser(user))
	return &resp, nil
}

func (d *authDomain) Token(
	ctx context.Context, req *model.TokenRequest,
) (*model.TokenResponse, error) {
	return d.issueToken(ctx, req.Username, req.Password)
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	resp, err := d.issueToken(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	loginResp := model.LoginResponse(*resp)
	return &loginResp, nil
}

func (d *authDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMeResponse(model.ConvertUser(user))
	return &resp, nil
}

func (d *authDomain) issueToken(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Incorrect email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	if !crypto.VerifyPassword(password, user.HashedPassword) {
		return nil, errorx.New(errorx.Unauthenticated, "Incorrect email or password")
	}

	if !user.IsActive {
		return nil, errorx.New(errorx.PermissionDenied, "Inactive user")
	}

	token, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{
			ID:      user.ID,
			Email:   user.Email,
			IsAdmin: user.IsAdmin,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}
