package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bedmatch/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

// identity is what the auth collaborator put into the token: who is on the
// other end of the socket and in which role.
type identity struct {
	UserID string
	Role   string
}

// validateToken checks signature and expiry and extracts the identity
// claims. Token issuance itself lives in the auth service; the gateway only
// consumes its output.
func (h *Handler) validateToken(tokenString string) (identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return h.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return identity{}, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return identity{}, errors.New("malformed claims")
	}
	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || (role != models.RoleTenant && role != models.RoleLandlord) {
		return identity{}, errors.New("token missing identity claims")
	}
	return identity{UserID: userID, Role: role}, nil
}

// bearerToken pulls the token out of the Authorization header, falling back
// to a ?token= query parameter for browser WebSocket clients that cannot
// set headers.
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.Query("token")
}

// IssueToken is a development helper mirroring what the auth service does in
// production: it signs an identity token for the given user and role.
func (h *Handler) IssueToken(c *gin.Context) {
	userID := c.Query("user_id")
	role := c.Query("role")
	if userID == "" || (role != models.RoleTenant && role != models.RoleLandlord) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and role=tenant|landlord are required"})
		return
	}

	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
		"iss":     "bedmatch-gateway",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": signed, "user_id": userID, "role": role})
}
