package handler

import (
	"github.com/gin-gonic/gin"
	vendorapp "github.com/storefront/backend/internal/application/vendor"
	"github.com/storefront/backend/internal/infrastructure/auth"
)

// AuthHandler handles vendor authentication HTTP requests
type AuthHandler struct {
	BaseHandler
	vendorService *vendorapp.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(vendorService *vendorapp.Service) *AuthHandler {
	return &AuthHandler{
		vendorService: vendorService,
	}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.RefreshToken)
	}

	vendorGroup := rg.Group("/vendors")
	{
		vendorGroup.GET("/me", h.Me)
		vendorGroup.PUT("/me", h.UpdateProfile)
		vendorGroup.PUT("/me/password", h.ChangePassword)
	}
}

// Register creates a new vendor account
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.vendorService.Register(c.Request.Context(), vendorapp.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toVendorResponse(info))
}

// Login authenticates a vendor and returns a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.vendorService.Authenticate(c.Request.Context(), vendorapp.AuthenticateInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LoginResponse{
		Token:  toTokenResponse(result.Tokens),
		Vendor: toVendorResponse(&result.Vendor),
	})
}

// RefreshToken exchanges a refresh token for a new token pair
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	pair, err := h.vendorService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTokenResponse(pair))
}

// Me returns the authenticated vendor's profile
func (h *AuthHandler) Me(c *gin.Context) {
	vendorID, err := getVendorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.vendorService.Get(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toVendorResponse(info))
}

// UpdateProfile updates the authenticated vendor's name and email
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	vendorID, err := getVendorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.vendorService.UpdateProfile(c.Request.Context(), vendorapp.UpdateProfileInput{
		VendorID: vendorID,
		Name:     req.Name,
		Email:    req.Email,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toVendorResponse(info))
}

// ChangePassword changes the authenticated vendor's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	vendorID, err := getVendorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.vendorService.ChangePassword(c.Request.Context(), vendorapp.ChangePasswordInput{
		VendorID:    vendorID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func toTokenResponse(pair *auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}

func toVendorResponse(info *vendorapp.VendorInfo) VendorResponse {
	return VendorResponse{
		ID:        info.ID,
		Name:      info.Name,
		Email:     info.Email,
		CreatedAt: info.CreatedAt,
		UpdatedAt: info.UpdatedAt,
	}
}
