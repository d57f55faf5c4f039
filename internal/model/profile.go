package model

type Profile struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	DisplayName     string `json:"display_name"`
	AvatarURL       string `json:"avatar_url"`
	BackgroundColor string `json:"background_color"`
	Bio             string `json:"bio"`
	FollowerCount   int    `json:"follower_count"`
	FollowingCount  int    `json:"following_count"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type GetMyProfileRequest struct{}

type GetMyProfileResponse Profile

type GetProfileRequest struct {
	UserID string `json:"user_id"`
}

type GetProfileResponse Profile

type UpdateProfileRequest struct {
	DisplayName     string `json:"display_name"`
	AvatarURL       string `json:"avatar_url"`
	BackgroundColor string `json:"background_color"`
	Bio             string `json:"bio"`
}

type UpdateProfileResponse Profile

type UpdateProfileByIDRequest struct {
	UserID          string `json:"user_id"`
	DisplayName     string `json:"display_name"`
	AvatarURL       string `json:"avatar_url"`
	BackgroundColor string `json:"background_color"`
	Bio             string `json:"bio"`
}

type UpdateProfileByIDResponse Profile
