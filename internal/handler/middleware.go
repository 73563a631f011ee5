package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/itemvault/backend/internal/model"
	"github.com/itemvault/backend/internal/service"
)

const authUserKey = "auth_user"

// AuthMiddleware resolves the bearer token into a user and attaches it
// to the request context. Resolution happens per request; the identity
// lives no longer than the request does.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrUnauthenticated.Error()})
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrUnauthenticated.Error()})
			c.Abort()
			return
		}

		user, err := authService.ResolveIdentity(c.Request.Context(), token)
		if err != nil {
			writeAuthError(c, err)
			c.Abort()
			return
		}

		c.Set(authUserKey, user)
		c.Next()
	}
}

// SuperuserMiddleware composes after AuthMiddleware and rejects
// non-superusers. Pure gate, no side effects.
func SuperuserMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetAuthUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrUnauthenticated.Error()})
			c.Abort()
			return
		}

		if err := authService.RequireSuperuser(user); err != nil {
			writeAuthError(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetAuthUser(c *gin.Context) *model.User {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*model.User); ok {
			return user
		}
	}
	return nil
}

func CORSMiddleware(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				if allowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
