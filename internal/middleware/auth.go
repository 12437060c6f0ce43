// Package middleware provides HTTP middleware: JWT validation and the
// central role guard that gates every workflow route group.
package middleware

import (
	"log"
	"strings"

	"dashen/internal/models"
	"dashen/internal/services/auth"
	"dashen/internal/utils"
	"dashen/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware handles JWT token validation and user authentication. It
// extracts the bearer token, validates it and stores the user claims in the
// request context.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Handler validates the bearer token, checks that the token version still
// matches the user's current version and stores the claims in the context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return response.Error(c, fiber.StatusUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Error(c, fiber.StatusUnauthorized, "invalid authorization format")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	_, claims, err := utils.ParseToken(tokenString)
	if err != nil {
		log.Printf("token validation error: %v", err)
		return response.Error(c, fiber.StatusUnauthorized, "invalid token")
	}

	currentVersion, err := m.authService.GetUserTokenVersion(claims.UserID)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "invalid token")
	}
	if claims.TokenVersion != currentVersion {
		return response.Error(c, fiber.StatusUnauthorized, "session expired")
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)
	return c.Next()
}

// RequireRoles returns a guard that admits only the listed roles. Admins
// pass every guard; they can read anything but transition nothing, which
// the workflow rule table enforces separately.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*models.UserClaims)
		if !ok || claims == nil {
			return response.Unauthorized(c)
		}
		if claims.Role == models.RoleAdmin {
			return c.Next()
		}
		if _, ok := allowed[claims.Role]; ok {
			return c.Next()
		}
		return response.Forbidden(c, "insufficient permissions")
	}
}

// Claims pulls the user claims a handler can rely on after Handler ran.
func Claims(c *fiber.Ctx) (*models.UserClaims, bool) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	return claims, ok && claims != nil
}
