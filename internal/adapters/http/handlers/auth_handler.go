package handlers

import (
	"errors"
	"strings"
	"time"

	"minibank/internal/config"
	"minibank/internal/core/domain"
	"minibank/internal/core/services"
	"minibank/internal/pkg/jwt"
	"minibank/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ChangePasswordRequest represents password change request body
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Login authenticates a user for the requested role and opens a session
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Username == "" {
		return response.BadRequest(c, "Username is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	role := domain.RoleCustomer
	if strings.EqualFold(req.Role, string(domain.RoleAdmin)) {
		role = domain.RoleAdmin
	}

	user, tokens, err := h.authService.Login(strings.TrimSpace(req.Username), req.Password, role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountLocked):
			return response.Locked(c, "Account is locked, contact an administrator")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid username or password")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	h.setAuthCookies(c, tokens.AccessToken, tokens.RefreshToken)

	return response.Success(c, "Login successful", fiber.Map{
		"access_token": tokens.AccessToken,
		"username":     user.Username,
		"role":         user.Role,
	})
}

// RefreshToken exchanges the refresh token cookie for a new access token
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		return response.Unauthorized(c, "Refresh token not found")
	}

	access, err := h.authService.Refresh(refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			h.clearAuthCookies(c)
			return response.Unauthorized(c, "Refresh token expired, please login again")
		case errors.Is(err, services.ErrSessionNotFound):
			h.clearAuthCookies(c)
			return response.Unauthorized(c, "Session expired, please login again")
		default:
			h.clearAuthCookies(c)
			return response.Unauthorized(c, "Invalid refresh token")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    access,
		Path:     "/",
		MaxAge:   h.cfg.JWT.AccessTokenMins * 60,
		Secure:   h.cfg.IsProd(),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return response.Success(c, "Token refreshed successfully", fiber.Map{
		"access_token": access,
	})
}

// Logout ends the session and clears cookies
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sessionID, ok := c.Locals("sessionID").(string); ok {
		h.authService.Logout(sessionID)
	}

	h.clearAuthCookies(c)
	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the authenticated identity
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	username, ok := c.Locals("username").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"username": username,
		"role":     c.Locals("role"),
	})
}

// ChangePassword changes the authenticated user's password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	username, ok := c.Locals("username").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.NewPassword == "" {
		return response.BadRequest(c, "New password is required")
	}

	if err := h.authService.ChangePassword(username, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrWrongOldPassword):
			return response.Unauthorized(c, "Old password is incorrect")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.BadRequest(c, "Failed to change password")
		}
	}

	return response.Success(c, "Password changed successfully", nil)
}

// setAuthCookies sets access and refresh token cookies
func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.AccessTokenMins * 60,
		Secure:   h.cfg.IsProd(),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.RefreshTokenDays * 24 * 60 * 60,
		Secure:   h.cfg.IsProd(),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// clearAuthCookies clears auth cookies
func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Now().Add(-1 * time.Hour),
			Secure:   h.cfg.IsProd(),
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}
}
