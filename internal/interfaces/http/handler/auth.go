package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storeboard/backend/internal/application/identity"
	"github.com/storeboard/backend/internal/interfaces/http/dto"
)

// AuthHandler handles registration, login and store linking.
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(authService *identity.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// RegisterRoutes mounts the public auth endpoints on the given group
// and the store-linking endpoint on the protected group.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/auth/register", h.Register)
	public.POST("/auth/login", h.Login)
	protected.POST("/auth/connect-store", h.ConnectStore)
}

// Register creates a new account and returns it with a fresh token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Email and password are required")
		return
	}

	result, err := h.authService.Register(c.Request.Context(), identity.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Success: true,
		User:    accountPayload(result.Account),
		Token:   result.Token,
	})
}

// Login authenticates an existing account.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Email and password are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		User:    accountPayload(result.Account),
		Token:   result.Token,
	})
}

// ConnectStore encrypts and persists store API credentials for the
// authenticated account.
func (h *AuthHandler) ConnectStore(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}

	var req ConnectStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Store URL, consumer key and consumer secret are required")
		return
	}

	info, err := h.authService.ConnectStore(c.Request.Context(), identity.ConnectStoreInput{
		AccountID:      accountID,
		StoreURL:       req.StoreURL,
		ConsumerKey:    req.ConsumerKey,
		ConsumerSecret: req.ConsumerSecret,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ConnectStoreResponse{
		Success:  true,
		StoreURL: info.StoreURL,
	})
}

func accountPayload(info identity.AccountInfo) dto.AccountPayload {
	return dto.AccountPayload{
		ID:                  info.ID,
		Email:               info.Email,
		DisplayName:         info.DisplayName,
		StoreURL:            info.StoreURL,
		TrialExpirationDate: info.TrialExpirationDate,
	}
}
