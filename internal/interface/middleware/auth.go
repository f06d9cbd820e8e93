package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"blogapi/pkg/helpers"
	"blogapi/pkg/response"
)

const CtxUserIDKey = "userID"

// tokenFromRequest reads the bearer token from the Authorization header or
// falls back to the access_token cookie set at login.
func tokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if tok, err := c.Cookie("access_token"); err == nil {
		return tok
	}
	return ""
}

// Auth validates the access token and, when Redis is available, requires an
// active session record (logout revokes it). Sets userID in the Gin context.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}

		if rdb != nil {
			key := "user:session:" + claims.UserID
			data, err := rdb.HGetAll(c.Request.Context(), key).Result()
			if err != nil || len(data) == 0 {
				response.AbortError(c, http.StatusUnauthorized, "session not found", nil)
				return
			}
			c.Set("userEmail", data["email"])
			c.Set("userName", data["username"])
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
