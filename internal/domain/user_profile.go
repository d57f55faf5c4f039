package domain

import (
	"context"
	"errors"
	"regexp"
	"unicode/utf8"

	"github.com/WeepingDogel/simple-social-board-api/internal/entity"
	"github.com/WeepingDogel/simple-social-board-api/internal/model"
	"github.com/WeepingDogel/simple-social-board-api/internal/repository"
	"github.com/WeepingDogel/simple-social-board-api/pkg/errorx"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
	"gorm.io/gorm"
)

const maxBioLength = 160

var hexColorRegexp = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type UserProfileDomain interface {
	GetMe(context.Context, *model.GetMyProfileRequest) (*model.GetMyProfileResponse, error)
	GetByUserID(context.Context, *model.GetProfileRequest) (*model.GetProfileResponse, error)
	Update(context.Context, *model.UpdateProfileRequest) (*model.UpdateProfileResponse, error)
	UpdateByUserID(context.Context, *model.UpdateProfileByIDRequest) (*model.UpdateProfileByIDResponse, error)
}

type userProfileDomain struct {
	userProfileRepo repository.UserProfileRepository
}

func NewUserProfileDomain(userProfileRepo repository.UserProfileRepository) *userProfileDomain {
	return &userProfileDomain{userProfileRepo: userProfileRepo}
}

func (d *userProfileDomain) GetMe(
	ctx context.Context, req *model.GetMyProfileRequest,
) (*model.GetMyProfileResponse, error) {
	profile, err := d.userProfileRepo.GetByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user profile: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMyProfileResponse(model.ConvertProfile(profile))
	return &resp, nil
}

func (d *userProfileDomain) GetByUserID(
	ctx context.Context, req *model.GetProfileRequest,
) (*model.GetProfileResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	profile, err := d.userProfileRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found profile")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user profile: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetProfileResponse(model.ConvertProfile(profile))
	return &resp, nil
}

func (d *userProfileDomain) Update(
	ctx context.Context, req *model.UpdateProfileRequest,
) (*model.UpdateProfileResponse, error) {
	return d.update(ctx, xcontext.RequestUserID(ctx), req)
}

// UpdateByUserID lets an admin edit any profile with the same validation
// rules as the self-service endpoint.
func (d *userProfileDomain) UpdateByUserID(
	ctx context.Context, req *model.UpdateProfileByIDRequest,
) (*model.UpdateProfileByIDResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty user id")
	}

	resp, err := d.update(ctx, req.UserID, &model.UpdateProfileRequest{
		DisplayName:     req.DisplayName,
		AvatarURL:       req.AvatarURL,
		BackgroundColor: req.BackgroundColor,
		Bio:             req.Bio,
	})
	if err != nil {
		return nil, err
	}

	adminResp := model.UpdateProfileByIDResponse(*resp)
	return &adminResp, nil
}

func (d *userProfileDomain) update(
	ctx context.Context, userID string, req *model.UpdateProfileRequest,
) (*model.UpdateProfileResponse, error) {
	if utf8.RuneCountInString(req.Bio) > maxBioLength {
		return nil, errorx.New(errorx.BadRequest, "Bio must have at most %d characters", maxBioLength)
	}

	if req.BackgroundColor != "" && !hexColorRegexp.MatchString(req.BackgroundColor) {
		return nil, errorx.New(errorx.BadRequest, "Background color must be a hex color")
	}

	if _, err := d.userProfileRepo.GetByUserID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found profile")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user profile: %v", err)
		return nil, errorx.Unknown
	}

	err := d.userProfileRepo.UpdateByUserID(ctx, userID, &entity.UserProfile{
		DisplayName:     req.DisplayName,
		AvatarURL:       req.AvatarURL,
		BackgroundColor: req.BackgroundColor,
		Bio:             req.Bio,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user profile: %v", err)
		return nil, errorx.Unknown
	}

	profile, err := d.userProfileRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user profile: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.UpdateProfileResponse(model.ConvertProfile(profile))
	return &resp, nil
}
