package middleware

import (
	"strings"

	"minibank/internal/config"
	"minibank/internal/core/domain"
	"minibank/internal/core/services"
	"minibank/internal/pkg/jwt"
	"minibank/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates the access token and the session behind it.
// A valid token whose session has idled out is refused, and every
// authenticated request resets the session's idle timer.
func AuthMiddleware(cfg *config.Config, sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Session must still be live; touching it resets the idle timer
		if err := sessions.Touch(claims.SessionID); err != nil {
			return response.Unauthorized(c, "Session expired, please sign in again")
		}

		// 6. Set user info in context
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)
		c.Locals("sessionID", claims.SessionID)

		return c.Next()
	}
}

// AdminOnly restricts a route to administrators
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		if role != string(domain.RoleAdmin) {
			return response.Forbidden(c, "Administrator access required")
		}
		return c.Next()
	}
}
