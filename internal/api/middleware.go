package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pulsefit/server/internal/service"
)

// Constants for context keys
const (
	ContextUserIDKey = "userID"
	ContextEmailKey  = "userEmail"
	ContextGroupsKey = "userGroups"
)

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &service.AuthClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}

		if !token.Valid || claims.UserID == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		// --- Token is valid ---
		c.Set(ContextUserIDKey, claims.UserID) // Hex ObjectID string
		c.Set(ContextEmailKey, claims.Email)
		c.Set(ContextGroupsKey, claims.Groups)

		c.Next()
	}
}

// GroupMiddleware checks that the authenticated user carries one of the
// required group claims. Authorization is the group claim exclusively; no
// email list is consulted here. Must run AFTER AuthMiddleware.
func GroupMiddleware(requiredGroups ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupsRaw, exists := c.Get(ContextGroupsKey)
		if !exists {
			abortWithError(c, http.StatusInternalServerError, "User groups not found in context")
			return
		}

		groups, ok := groupsRaw.([]string)
		if !ok {
			abortWithError(c, http.StatusInternalServerError, "Invalid user groups type in context")
			return
		}

		for _, required := range requiredGroups {
			for _, group := range groups {
				if group == required {
					c.Next()
					return
				}
			}
		}
		abortWithError(c, http.StatusForbidden, "Insufficient group membership for this operation")
	}
}

// RequestLogger attaches a correlation id to each request and logs its
// outcome through zerolog.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)
		start := time.Now()

		c.Next()

		logger.Info().
			Str("requestID", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// getUserIDFromContext returns the authenticated user's hex id.
func getUserIDFromContext(c *gin.Context) (string, error) {
	userIDRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", errors.New("user ID not found in context")
	}
	userID, ok := userIDRaw.(string)
	if !ok || userID == "" {
		return "", errors.New("invalid user ID in context")
	}
	return userID, nil
}

// getUserObjectIDFromContext parses the context user id into an ObjectID.
func getUserObjectIDFromContext(c *gin.Context) (primitive.ObjectID, error) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(userID)
}
