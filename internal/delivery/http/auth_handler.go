package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"veloxtrade/internal/delivery/http/dto"
	"veloxtrade/internal/domain"
	"veloxtrade/internal/middleware"
	"veloxtrade/internal/service"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles user registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	if req.Email == "" || req.Password == "" {
		return BadRequestResponse(c, "Email and password are required")
	}
	if len(req.Password) < 8 {
		return BadRequestResponse(c, "Password must be at least 8 characters")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, token, err := h.authService.Register(ctx, service.RegisterInput{
		Name:              req.Name,
		Email:             req.Email,
		Password:          req.Password,
		Phone:             req.Phone,
		Broker:            req.Broker,
		TradingExperience: req.TradingExperience,
	})
	if errors.Is(err, domain.ErrEmailExists) {
		return ConflictResponse(c, "Email already registered")
	}
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to register user", err)
	}

	h.setSessionCookie(c, token)
	return CreatedResponse(c, dto.AuthResponse{
		Token: token,
		User:  userOutput(user),
	})
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	if req.Email == "" || req.Password == "" {
		return BadRequestResponse(c, "Email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, token, err := h.authService.Login(ctx, req.Email, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return UnauthorizedResponse(c, "Invalid credentials")
	}
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to log in", err)
	}

	h.setSessionCookie(c, token)
	return SuccessResponse(c, dto.AuthResponse{
		Token: token,
		User:  userOutput(user),
	})
}

// Logout handles user logout. Tokens are stateless, so logout just clears
// the cookie; it is idempotent by construction.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie := &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	}
	c.SetCookie(cookie)

	return SuccessMessageResponse(c, "Logged out", nil)
}

// Me returns the current user's profile
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.authService.CurrentUser(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return NotFoundResponse(c, "User not found")
	}
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get user details", err)
	}

	return SuccessResponse(c, userOutput(user))
}

// UpdateProfile merges submitted fields into the current user's profile
// PUT /api/v1/auth/profile
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var update domain.ProfileUpdate
	if err := c.Bind(&update); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.authService.UpdateProfile(ctx, userID, update)
	if errors.Is(err, domain.ErrUserNotFound) {
		return NotFoundResponse(c, "User not found")
	}
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to update profile", err)
	}

	return SuccessResponse(c, userOutput(user))
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	cookie := &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: http.SameSiteStrictMode,
		MaxAge:   86400, // 24 hours
	}
	c.SetCookie(cookie)
}

func userOutput(user *domain.User) *dto.UserOutput {
	return &dto.UserOutput{
		ID:                 user.ID.String(),
		Name:               user.Name,
		Email:              user.Email,
		Phone:              user.Phone,
		Broker:             user.Broker,
		TradingExperience:  user.TradingExperience,
		SubscriptionStatus: user.SubscriptionStatus,
		TrialDays:          user.TrialDays,
		IsPremium:          user.IsPremium,
		CreatedAt:          user.CreatedAt.Format(time.RFC3339),
	}
}
