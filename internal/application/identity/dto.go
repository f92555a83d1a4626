package identity

import "time"

// RegisterInput contains the input for account registration
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// LoginInput contains the input for account login
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult contains the result of a successful register or login
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Account   AccountInfo
}

// AccountInfo contains account data safe to return to clients.
// The password hash never appears here.
type AccountInfo struct {
	ID                  int64
	Email               string
	DisplayName         string
	StoreURL            string
	TrialExpirationDate *time.Time
}

// ConnectStoreInput contains the input for linking a store
type ConnectStoreInput struct {
	AccountID      int64
	StoreURL       string
	ConsumerKey    string
	ConsumerSecret string
}

// UpdateProfileInput contains the input for a profile update
type UpdateProfileInput struct {
	AccountID   int64
	Email       string
	DisplayName string
}
