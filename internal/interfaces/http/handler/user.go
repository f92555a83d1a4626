package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storeboard/backend/internal/application/identity"
	"github.com/storeboard/backend/internal/interfaces/http/dto"
)

// UserHandler serves the authenticated account's profile.
type UserHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewUserHandler creates a user handler.
func NewUserHandler(authService *identity.AuthService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// RegisterRoutes mounts the profile endpoints on the protected group.
func (h *UserHandler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/user/profile", h.GetProfile)
	protected.PUT("/user/profile", h.UpdateProfile)
}

// GetProfile returns the current account's profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}

	info, err := h.authService.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		Success: true,
		User:    accountPayload(*info),
	})
}

// UpdateProfile changes the account's email and/or display name.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	accountID, ok := h.accountID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "Invalid request body")
		return
	}
	if req.Email == "" && req.DisplayName == "" {
		h.BadRequest(c, "Nothing to update")
		return
	}

	info, err := h.authService.UpdateProfile(c.Request.Context(), identity.UpdateProfileInput{
		AccountID:   accountID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		Success: true,
		User:    accountPayload(*info),
	})
}
