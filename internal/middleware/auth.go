package middleware

import (
	"context"
	"strings"

	"github.com/WeepingDogel/simple-social-board-api/internal/model"
	"github.com/WeepingDogel/simple-social-board-api/internal/repository"
	"github.com/WeepingDogel/simple-social-board-api/pkg/errorx"
	"github.com/WeepingDogel/simple-social-board-api/pkg/router"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
)

type AuthVerifier struct {
	useAccessToken bool
	optional       bool
	userRepo       repository.UserRepository
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) WithAccessToken() *AuthVerifier {
	a.useAccessToken = true
	return a
}

// WithOptional lets unauthenticated requests pass through anonymously. A
// token that is present but invalid is still rejected.
func (a *AuthVerifier) WithOptional() *AuthVerifier {
	a.optional = true
	return a
}

// WithActiveUser additionally rejects deactivated accounts. It needs a
// database roundtrip, so read-only public routes skip it.
func (a *AuthVerifier) WithActiveUser(userRepo repository.UserRepository) *AuthVerifier {
	a.userRepo = userRepo
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if !a.useAccessToken {
			return nil, nil
		}

		token := getAccessToken(ctx)
		if token == "" {
			if a.optional {
				return nil, nil
			}

			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		var info model.AccessToken
		if err := xcontext.TokenEngine(ctx).Verify(token, &info); err != nil {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		if a.userRepo != nil {
			user, err := a.userRepo.GetByID(ctx, info.ID)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
				return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
			}

			if !user.IsActive {
				return nil, errorx.New(errorx.PermissionDenied, "Inactive user")
			}
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

// getAccessToken reads the bearer token from the Authorization header, or
// from the token query parameter for websocket handshakes where browsers
// cannot set headers.
func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	authorization := req.Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found && auth == "Bearer" {
		return token
	}

	return req.URL.Query().Get("token")
}
