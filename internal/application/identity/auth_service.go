package identity

import (
	"context"
	"strconv"

	"github.com/storeboard/backend/internal/domain/account"
	"github.com/storeboard/backend/internal/domain/shared"
	"github.com/storeboard/backend/internal/infrastructure/auth"
	"github.com/storeboard/backend/internal/infrastructure/secrets"
	"go.uber.org/zap"
)

// AuthService handles registration, login, profile and store linking
type AuthService struct {
	accountRepo account.Repository
	jwtService  *auth.JWTService
	cipher      *secrets.Cipher
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	accountRepo account.Repository,
	jwtService *auth.JWTService,
	cipher *secrets.Cipher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		jwtService:  jwtService,
		cipher:      cipher,
		logger:      logger,
	}
}

// Register creates a new account and issues its first token
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	acc, err := account.NewAccount(input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	if input.DisplayName != "" {
		if err := acc.SetDisplayName(input.DisplayName); err != nil {
			return nil, err
		}
	}

	exists, err := s.accountRepo.ExistsByEmail(ctx, acc.Email)
	if err != nil {
		s.logger.Error("Failed to check email existence", zap.Error(err))
		return nil, shared.ErrInternal
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	if err := s.accountRepo.Create(ctx, acc); err != nil {
		if err == shared.ErrAlreadyExists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
		}
		s.logger.Error("Failed to create account", zap.Error(err))
		return nil, shared.ErrInternal
	}

	result, err := s.issueToken(acc)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Account registered",
		zap.Int64("account_id", acc.ID),
		zap.String("email", acc.Email))

	return result, nil
}

// Login authenticates an account and returns a fresh token. Both an
// unknown email and a wrong password yield the same generic error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	acc, err := s.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if err == shared.ErrNotFound {
			s.logger.Warn("Login attempt for unknown email")
			return nil, shared.ErrInvalidCredentials
		}
		s.logger.Error("Failed to look up account", zap.Error(err))
		return nil, shared.ErrInternal
	}

	if !acc.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.Int64("account_id", acc.ID))
		return nil, shared.ErrInvalidCredentials
	}

	result, err := s.issueToken(acc)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Account logged in", zap.Int64("account_id", acc.ID))

	return result, nil
}

// ConnectStore encrypts the store credentials and links them to the
// account. URL and both credentials are persisted as a unit.
func (s *AuthService) ConnectStore(ctx context.Context, input ConnectStoreInput) (*AccountInfo, error) {
	acc, err := s.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.ErrNotFound
		}
		s.logger.Error("Failed to load account", zap.Error(err))
		return nil, shared.ErrInternal
	}

	keyEnc, err := s.cipher.Encrypt(input.ConsumerKey)
	if err != nil {
		s.logger.Error("Failed to encrypt consumer key", zap.Error(err))
		return nil, shared.ErrInternal
	}
	secretEnc, err := s.cipher.Encrypt(input.ConsumerSecret)
	if err != nil {
		s.logger.Error("Failed to encrypt consumer secret", zap.Error(err))
		return nil, shared.ErrInternal
	}

	if err := acc.LinkStore(input.StoreURL, keyEnc, secretEnc); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Update(ctx, acc); err != nil {
		s.logger.Error("Failed to persist store link", zap.Error(err))
		return nil, shared.ErrInternal
	}

	s.logger.Info("Store linked",
		zap.Int64("account_id", acc.ID),
		zap.String("store_url", acc.StoreURL))

	info := toAccountInfo(acc)
	return &info, nil
}

// GetProfile returns the account's public profile
func (s *AuthService) GetProfile(ctx context.Context, accountID int64) (*AccountInfo, error) {
	acc, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.ErrNotFound
		}
		s.logger.Error("Failed to load account", zap.Error(err))
		return nil, shared.ErrInternal
	}

	info := toAccountInfo(acc)
	return &info, nil
}

// UpdateProfile changes the account's email and/or display name
func (s *AuthService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*AccountInfo, error) {
	acc, err := s.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.ErrNotFound
		}
		s.logger.Error("Failed to load account", zap.Error(err))
		return nil, shared.ErrInternal
	}

	if input.Email != "" && input.Email != acc.Email {
		exists, err := s.accountRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			s.logger.Error("Failed to check email existence", zap.Error(err))
			return nil, shared.ErrInternal
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
		}
		if err := acc.SetEmail(input.Email); err != nil {
			return nil, err
		}
	}

	if input.DisplayName != "" {
		if err := acc.SetDisplayName(input.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.accountRepo.Update(ctx, acc); err != nil {
		s.logger.Error("Failed to persist profile update", zap.Error(err))
		return nil, shared.ErrInternal
	}

	s.logger.Info("Profile updated", zap.Int64("account_id", acc.ID))

	info := toAccountInfo(acc)
	return &info, nil
}

// StoreCredentials decrypts the account's linked store credentials.
// Fails with STORE_NOT_LINKED before touching the cipher when no
// store is connected.
func (s *AuthService) StoreCredentials(ctx context.Context, accountID int64) (storeURL, consumerKey, consumerSecret string, err error) {
	acc, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if err == shared.ErrNotFound {
			return "", "", "", shared.ErrNotFound
		}
		s.logger.Error("Failed to load account", zap.Error(err))
		return "", "", "", shared.ErrInternal
	}

	if !acc.StoreLinked() {
		return "", "", "", shared.ErrStoreNotLinked
	}

	consumerKey, err = s.cipher.Decrypt(acc.ConsumerKeyEnc)
	if err != nil {
		s.logger.Error("Failed to decrypt consumer key", zap.Int64("account_id", acc.ID), zap.Error(err))
		return "", "", "", shared.ErrInternal
	}
	consumerSecret, err = s.cipher.Decrypt(acc.ConsumerSecretEnc)
	if err != nil {
		s.logger.Error("Failed to decrypt consumer secret", zap.Int64("account_id", acc.ID), zap.Error(err))
		return "", "", "", shared.ErrInternal
	}

	return acc.StoreURL, consumerKey, consumerSecret, nil
}

func (s *AuthService) issueToken(acc *account.Account) (*AuthResult, error) {
	token, expiresAt, err := s.jwtService.GenerateToken(strconv.FormatInt(acc.ID, 10))
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.ErrInternal
	}

	return &AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   toAccountInfo(acc),
	}, nil
}

func toAccountInfo(acc *account.Account) AccountInfo {
	return AccountInfo{
		ID:                  acc.ID,
		Email:               acc.Email,
		DisplayName:         acc.DisplayName,
		StoreURL:            acc.StoreURL,
		TrialExpirationDate: acc.TrialExpirationDate,
	}
}
