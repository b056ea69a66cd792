package Middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"OdontAll/Models"
	"OdontAll/Utils/Token"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CachedUser is the slice of the user row the middleware needs on every
// request, kept in redis so role checks don't hit the database each time.
type CachedUser struct {
	UserID         uint    `json:"user_id"`
	Username       string  `json:"username"`
	Role           string  `json:"role"`
	ProfessionalID *string `json:"professional_id"`
	IsActive       bool    `json:"is_active"`
}

const userCacheTTL = 5 * time.Minute

func JwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := Token.TokenValid(c); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		userID, err := Token.ExtractTokenID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		user, err := loadUser(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User account is disabled"})
			c.Abort()
			return
		}

		c.Set("userID", user.UserID)
		c.Set("userRole", user.Role)
		if user.ProfessionalID != nil {
			c.Set("professionalID", *user.ProfessionalID)
		}
		c.Next()
	}
}

// RequireRoles gates a route group to the given roles. Runs after
// JwtAuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("userRole")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(Models.RoleAdmin)
}

func loadUser(userID uint) (*CachedUser, error) {
	cacheKey := fmt.Sprintf("user:%d:data", userID)

	if Models.RDB != nil {
		cached, err := Models.RDB.Get(Models.Ctx, cacheKey).Result()
		if err == nil {
			var user CachedUser
			if json.Unmarshal([]byte(cached), &user) == nil {
				return &user, nil
			}
			slog.Warn("failed to unmarshal cached user data", "user_id", userID)
		} else if err != redis.Nil {
			slog.Error("redis GET failed", "error", err, "user_id", userID)
		}
	}

	var dbUser Models.User
	if err := Models.DB.First(&dbUser, userID).Error; err != nil {
		return nil, err
	}

	user := CachedUser{
		UserID:         dbUser.ID,
		Username:       dbUser.Username,
		Role:           dbUser.Role,
		ProfessionalID: dbUser.ProfessionalID,
		IsActive:       dbUser.IsActive,
	}

	if Models.RDB != nil {
		if payload, err := json.Marshal(user); err == nil {
			if err := Models.RDB.Set(Models.Ctx, cacheKey, payload, userCacheTTL).Err(); err != nil {
				slog.Error("redis SET failed", "error", err, "user_id", userID)
			}
		}
	}

	return &user, nil
}

// InvalidateUserCache drops the cached entry after role or status changes so
// the next request sees the new state.
func InvalidateUserCache(userID uint) {
	if Models.RDB == nil {
		return
	}
	if err := Models.RDB.Del(Models.Ctx, fmt.Sprintf("user:%d:data", userID)).Err(); err != nil {
		slog.Error("redis DEL failed", "error", err, "user_id", userID)
	}
}
