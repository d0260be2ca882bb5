package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/manusiele/therapyflow-sub000/src/config"
	"github.com/manusiele/therapyflow-sub000/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims this service issues and accepts.
type Claims struct {
	UserID   string `json:"user_id"`
	UserType string `json:"user_type"`
	jwt.RegisteredClaims
}

// NewAccessToken signs an HS256 token for a user. Used by tests and by the
// practice's auth service sharing the same secret.
func NewAccessToken(secret, issuer string, ttl time.Duration, claims Claims) (string, error) {
	now := time.Now().UTC()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the token signature and expiry and returns the claims.
func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// UserAuthRequiredMiddleware rejects requests without a valid bearer token
// and puts the caller's claims into the gin context.
func UserAuthRequiredMiddleware(cfg *config.GlobalConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.SendError(c, http.StatusUnauthorized, "Unauthorized", "Authorization header missing", "https://session-service.com/validation-error", c.FullPath())
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.SendError(c, http.StatusUnauthorized, "Unauthorized", "Invalid authorization header format", "https://session-service.com/validation-error", c.FullPath())
			c.Abort()
			return
		}

		claims, err := ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			utils.SendError(c, http.StatusUnauthorized, "Unauthorized", "Token validation failed: "+err.Error(), "https://session-service.com/validation-error", c.FullPath())
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_type", claims.UserType)
		c.Next()
	}
}
