package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"smartride-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// AuthRequired validates the bearer token and stores the caller identity on
// the context. Everything behind it may trust userID/userRole as verified.
func AuthRequired(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "missing bearer token",
			})
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid or expired token",
			})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid token claims",
			})
			return
		}

		uid, _ := claims["user_id"].(float64)
		role, _ := claims["role"].(string)
		if uid <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid token claims",
			})
			return
		}

		c.Set(userIDKey, int64(uid))
		c.Set(userRoleKey, role)
		c.Next()
	}
}

// CurrentUser returns the identity placed on the context by AuthRequired.
func CurrentUser(c *gin.Context) domain.RequestContext {
	rc := domain.RequestContext{Role: c.GetString(userRoleKey)}
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			rc.UserID = id
		}
	}
	return rc
}
