package security

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Mbishu2002/newDesk/pkg/roles"
)

const tokenTTL = 120 * time.Hour

// TokenManager signs and verifies session tokens. The secret is injected
// at construction; nothing in this package reads the environment.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret must not be empty")
	}
	return &TokenManager{secret: []byte(secret)}, nil
}

func (m *TokenManager) Generate(s Session) (string, error) {
	claims := jwt.MapClaims{
		"userID":   s.UserID,
		"username": s.Username,
		"role":     string(s.Role),
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}
	if s.ShopID != nil {
		claims["shopID"] = *s.ShopID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) Parse(tokenString string) (Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Session{}, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, fmt.Errorf("invalid token claims")
	}

	session := Session{}
	if v, ok := claims["userID"].(string); ok {
		session.UserID = v
	}
	if v, ok := claims["username"].(string); ok {
		session.Username = v
	}
	if v, ok := claims["role"].(string); ok {
		session.Role = roles.Role(v)
	}
	if v, ok := claims["shopID"].(string); ok {
		session.ShopID = &v
	}

	if session.UserID == "" {
		return Session{}, fmt.Errorf("token is missing the user id")
	}

	return session, nil
}

// JWTMiddleware validates the bearer token and stores the session on the
// request context.
func (m *TokenManager) JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header missing"})
			return
		}

		session, err := m.Parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		SetSession(c, session)
		c.Next()
	}
}

// Authorize ensures the caller holds at least the required role.
func Authorize(required roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFrom(c)
		if !ok || !session.Role.AtLeast(required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Forbidden: insufficient permissions"})
			return
		}
		c.Next()
	}
}
