package model

type ModerationAction struct {
	ID           string `json:"id"`
	AdminID      string `json:"admin_id"`
	ActionType   string `json:"action_type"`
	TargetUserID string `json:"target_user_id,omitempty"`
	TargetPostID string `json:"target_post_id,omitempty"`
	Reason       string `json:"reason,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type AdminDeletePostRequest struct {
	PostID string `json:"post_id"`
	Reason string `json:"reason"`
}

type AdminDeletePostResponse struct {
	Message string `json:"message"`
}

type AdminSetUserActiveRequest struct {
	UserID string `json:"user_id"`
	Active bool   `json:"active"`
	Reason string `json:"reason"`
}

type AdminSetUserActiveResponse struct {
	User User `json:"user"`
}

type AdminSetUserAdminRequest struct {
	UserID string `json:"user_id"`
	Admin  bool   `json:"admin"`
	Reason string `json:"reason"`
}

type AdminSetUserAdminResponse struct {
	User User `json:"user"`
}

type AdminModerateRequest struct {
	ActionType   string `json:"action_type"`
	TargetUserID string `json:"target_user_id"`
	TargetPostID string `json:"target_post_id"`
	Reason       string `json:"reason"`
}

type AdminModerateResponse ModerationAction

type AdminGetUsersRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type AdminGetUsersResponse struct {
	Users []User `json:"users"`
	Total int64  `json:"total"`
}

type AdminGetActionsRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type AdminGetActionsResponse struct {
	Actions []ModerationAction `json:"actions"`
	Total   int64              `json:"total"`
}
