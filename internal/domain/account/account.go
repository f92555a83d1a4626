package account

import (
	"regexp"
	"strings"
	"time"

	"github.com/storeboard/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// Account represents a registered dashboard user and, once linked,
// the encrypted credentials of their WooCommerce store.
// It is the aggregate root for account-related operations.
type Account struct {
	ID                  int64
	Email               string
	PasswordHash        string
	DisplayName         string
	StoreURL            string
	ConsumerKeyEnc      string
	ConsumerSecretEnc   string
	TrialExpirationDate *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewAccount creates a new account with a hashed password.
func NewAccount(email, password string) (*Account, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	now := time.Now()
	return &Account{
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// VerifyPassword verifies if the provided password matches.
func (a *Account) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	return err == nil
}

// SetEmail sets the account's email.
func (a *Account) SetEmail(email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	a.Email = email
	a.UpdatedAt = time.Now()
	return nil
}

// SetDisplayName sets the account's display name.
func (a *Account) SetDisplayName(displayName string) error {
	if displayName != "" && len(displayName) > 200 {
		return shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot exceed 200 characters")
	}

	a.DisplayName = strings.TrimSpace(displayName)
	a.UpdatedAt = time.Now()
	return nil
}

// SetTrialExpirationDate sets the advisory trial-end marker. The value
// is never enforced server-side.
func (a *Account) SetTrialExpirationDate(t *time.Time) {
	a.TrialExpirationDate = t
	a.UpdatedAt = time.Now()
}

// LinkStore sets the store URL and both encrypted credentials together.
// The three fields are only ever set or cleared as a unit.
func (a *Account) LinkStore(storeURL, consumerKeyEnc, consumerSecretEnc string) error {
	storeURL = strings.TrimSpace(storeURL)
	if storeURL == "" {
		return shared.NewDomainError("INVALID_STORE_URL", "Store URL cannot be empty")
	}
	if !strings.HasPrefix(storeURL, "http://") && !strings.HasPrefix(storeURL, "https://") {
		return shared.NewDomainError("INVALID_STORE_URL", "Store URL must start with http:// or https://")
	}
	if consumerKeyEnc == "" || consumerSecretEnc == "" {
		return shared.NewDomainError("INVALID_STORE_CREDENTIALS", "Consumer key and secret are required")
	}

	a.StoreURL = strings.TrimSuffix(storeURL, "/")
	a.ConsumerKeyEnc = consumerKeyEnc
	a.ConsumerSecretEnc = consumerSecretEnc
	a.UpdatedAt = time.Now()
	return nil
}

// UnlinkStore clears the store URL and both encrypted credentials together.
func (a *Account) UnlinkStore() {
	a.StoreURL = ""
	a.ConsumerKeyEnc = ""
	a.ConsumerSecretEnc = ""
	a.UpdatedAt = time.Now()
}

// StoreLinked reports whether a store is connected to this account.
// A store is linked iff the URL and both credentials are present.
func (a *Account) StoreLinked() bool {
	return a.StoreURL != "" && a.ConsumerKeyEnc != "" && a.ConsumerSecretEnc != ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return "", shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return "", shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return email, nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
