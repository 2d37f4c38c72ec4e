package middleware

import (
	"net/http"
	"strings"

	"crm/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// AccessTokenCookie carries the bearer token for browser clients.
	AccessTokenCookie = "access_token"

	ctxUserID = "userID"
	ctxActor  = "actor"
)

// Authenticate validates an HS256 JWT from the access_token cookie, the
// Authorization header or the token query parameter (websocket clients).
// An empty secret disables authentication.
func Authenticate(secret []byte) gin.HandlerFunc {
	if len(secret) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("authorization is missing"))
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("invalid token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("invalid token claims"))
			return
		}

		sub, _ := claims["sub"].(string)
		actor, _ := claims["name"].(string)
		if strings.TrimSpace(actor) == "" {
			actor = sub
		}

		c.Set(ctxUserID, sub)
		c.Set(ctxActor, actor)
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, bool) {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie, true
	}

	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	if token := c.Query("token"); token != "" {
		return token, true
	}
	return "", false
}

// ActorFromContext returns the authenticated caller's display name, or "" when
// the request is anonymous.
func ActorFromContext(c *gin.Context) string {
	return c.GetString(ctxActor)
}
