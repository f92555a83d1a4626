package handler

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ConnectStoreRequest is the body for POST /auth/connect-store. The
// account is taken from the bearer token; a userId field in the body
// is accepted for wire compatibility but never trusted.
type ConnectStoreRequest struct {
	UserID         int64  `json:"userId"`
	StoreURL       string `json:"storeUrl" binding:"required,storeurl"`
	ConsumerKey    string `json:"consumerKey" binding:"required"`
	ConsumerSecret string `json:"consumerSecret" binding:"required"`
}

// UpdateProfileRequest is the body for PUT /user/profile.
type UpdateProfileRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}
