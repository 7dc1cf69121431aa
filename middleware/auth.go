package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sprintdeck/api/config"
	logger "github.com/sprintdeck/api/logging"
)

// MemberClaims is the token payload issued at login. The authorization
// engine re-resolves role and permission set from storage; the claims
// only identify the caller.
type MemberClaims struct {
	jwt.StandardClaims
	MemberID       string `json:"member_id"`
	OrganizationID string `json:"org_id"`
	Role           string `json:"role"`
}

// Auth verifies the bearer token and stows the caller's identity in the
// gin context under "requestingUserID", "memberID" and
// "organizationID".
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := parseToken(tokenString)
		if err != nil {
			logger.Warn("Token verification failed", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set("requestingUserID", claims.Subject)
		c.Set("memberID", claims.MemberID)
		c.Set("organizationID", claims.OrganizationID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

func parseToken(tokenString string) (*MemberClaims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	secret := config.GetString("auth.jwtSecret")
	if secret == "" {
		return nil, fmt.Errorf("auth.jwtSecret is not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &MemberClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*MemberClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.MemberID == "" || claims.OrganizationID == "" {
		return nil, fmt.Errorf("token is missing member identity")
	}
	return claims, nil
}
