package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atlas-lingua/portal-service/internal/models"
	"github.com/atlas-lingua/portal-service/internal/repositories"
	"github.com/atlas-lingua/portal-service/internal/utils"
)

// Context keys set by the auth middleware chain.
const (
	ctxUserID   = "user_id"
	ctxIdentity = "identity"
	ctxProfile  = "profile"
	ctxUserRole = "user_role"
)

// AuthMiddleware drives the per-request authorization state machine:
// Unauthenticated -> (token valid) -> Authenticated -> (profile role matches)
// -> Authorized. Token failures are 401s; profile/role failures are 403s.
type AuthMiddleware struct {
	identity repositories.IdentityProvider
	kv       repositories.KVStore
	logger   utils.Logger
}

func NewAuthMiddleware(identity repositories.IdentityProvider, kv repositories.KVStore, logger utils.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		identity: identity,
		kv:       kv,
		logger:   logger,
	}
}

// RequireAuth validates the bearer token and stores the resolved identity in
// the request context.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorEnvelope{
				Success: false, Error: "missing or malformed authorization header",
			})
			return
		}

		identity, err := am.identity.ValidateToken(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, repositories.ErrInvalidToken) {
				am.logger.Error("token validation failed upstream", "error", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorEnvelope{
				Success: false, Error: "invalid token",
			})
			return
		}

		c.Set(ctxUserID, identity.ID)
		c.Set(ctxIdentity, identity)
		c.Next()
	}
}

// RequireRole loads the caller's Profile from the key-value store and checks
// its role against the endpoint's requirement. The profile is re-read on every
// request so a role change takes effect on the very next call.
func (am *AuthMiddleware) RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(ctxUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorEnvelope{
				Success: false, Error: "forbidden",
			})
			return
		}

		var profile models.Profile
		err := am.kv.Get(c.Request.Context(), models.ProfileKey(userID), &profile)
		if err != nil {
			if !errors.Is(err, repositories.ErrKeyNotFound) {
				am.logger.Error("profile lookup failed", "user_id", userID, "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorEnvelope{
					Success: false, Error: "internal server error",
				})
				return
			}
			// A valid token without a profile is an authorization failure,
			// not a missing resource.
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorEnvelope{
				Success: false, Error: "forbidden",
			})
			return
		}

		if profile.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorEnvelope{
				Success: false, Error: fmt.Sprintf("requires %s role", role),
			})
			return
		}

		c.Set(ctxProfile, &profile)
		c.Set(ctxUserRole, profile.Role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetUserIDFromContext extracts the authenticated user id from the request
// context.
func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID := c.GetString(ctxUserID)
	if userID == "" {
		return "", errors.New("user id not found in context")
	}
	return userID, nil
}

// GetProfileFromContext extracts the caller's profile, set by RequireRole.
func GetProfileFromContext(c *gin.Context) (*models.Profile, error) {
	v, exists := c.Get(ctxProfile)
	if !exists {
		return nil, errors.New("profile not found in context")
	}
	profile, ok := v.(*models.Profile)
	if !ok {
		return nil, errors.New("invalid profile type in context")
	}
	return profile, nil
}
