package api

// LoginRequest is the body of a request to create a new login session.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after a successful login or token refresh.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// UserModel is the JSON representation of a user, as seen through the API.
type UserModel struct {
	URI            string `json:"uri,omitempty"`
	ID             string `json:"id,omitempty"`
	Username       string `json:"username,omitempty"`
	Password       string `json:"password,omitempty"`
	Role           string `json:"role,omitempty"`
	Email          string `json:"email,omitempty"`
	Created        string `json:"created,omitempty"`
	Modified       string `json:"modified,omitempty"`
	LastLogoutTime string `json:"last_logout_time,omitempty"`
	LastLoginTime  string `json:"last_login_time,omitempty"`
}

// updatableField wraps a field that may or may not be present in a partial
// update request; Update distinguishes "not sent" from "sent as zero value".
type updatableField struct {
	Update bool   `json:"u"`
	Value  string `json:"v"`
}

// UserUpdateRequest is the body of a partial update to a user entity. Only
// fields with Update set to true are applied.
type UserUpdateRequest struct {
	ID       updatableField `json:"id"`
	Username updatableField `json:"username"`
	Password updatableField `json:"password"`
	Email    updatableField `json:"email"`
	Role     updatableField `json:"role"`
}

// InfoModel is returned from the info endpoint and describes the running
// server.
type InfoModel struct {
	Version struct {
		Server string `json:"server"`
	} `json:"version"`
}
