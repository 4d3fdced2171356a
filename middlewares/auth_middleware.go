package middlewares

import (
	"net/http"
	"strings"

	"bmicalc/services"
	"bmicalc/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware accepts "Authorization: Bearer <jwt>" and, for WebSocket
// upgrades that cannot set headers, a ?token= query parameter. It sets
// "userID" and "email" on the context.
func AuthMiddleware(secret []byte, store services.ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured: JWT_SECRET not set"})
			return
		}

		var tokenString string
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tokenString = strings.TrimPrefix(h, "Bearer ")
		} else {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := utils.ParseJWT(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		email, _ := claims["email"].(string)
		if v, ok := claims["userId"].(float64); ok && v > 0 {
			c.Set("userID", uint(v))
			c.Set("email", email)
			c.Next()
			return
		}

		// Older tokens only carry the email.
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "email claim missing"})
			return
		}
		user, err := store.FindUserByEmail(email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		c.Set("userID", user.ID)
		c.Set("email", email)
		c.Next()
	}
}
