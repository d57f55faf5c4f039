package model

type FollowUserRequest struct {
	UserID string `json:"user_id"`
}

type FollowUserResponse struct {
	Message string `json:"message"`
}

type UnfollowUserRequest struct {
	UserID string `json:"user_id"`
}

type UnfollowUserResponse struct {
	Message string `json:"message"`
}

type GetFollowersRequest struct {
	UserID string `json:"user_id"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

type GetFollowersResponse struct {
	Items []ShortUser `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Pages int         `json:"pages"`
}

type GetFollowingRequest struct {
	UserID string `json:"user_id"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

type GetFollowingResponse struct {
	Items []ShortUser `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Pages int         `json:"pages"`
}

type GetIsFollowingRequest struct {
	UserID string `json:"user_id"`
}

type GetIsFollowingResponse struct {
	IsFollowing bool `json:"is_following"`
}
