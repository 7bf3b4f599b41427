// Package identity verifies bearer tokens issued by the identity service.
package identity

import (
	"errors"
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserClaims is the key used to store user claims in the Gin context.
	ContextUserClaims = "userClaims"
	// UserIDClaim is the claim holding the caller's id.
	UserIDClaim = "userID"
)

// ErrNoUser is returned when the request carries no usable user id claim.
var ErrNoUser = errors.New("no user in request")

// Authoriz rejects requests without a valid bearer token and stores the
// decoded claims under ContextUserClaims.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ContextUserClaims, claims)
		c.Next()
	}
}

// UserID reads the caller's id from the claims set by Authoriz.
func UserID(c *gin.Context) (uuid.UUID, error) {
	raw, ok := c.Get(ContextUserClaims)
	if !ok {
		return uuid.Nil, ErrNoUser
	}
	claims, ok := raw.(map[string]interface{})
	if !ok {
		return uuid.Nil, ErrNoUser
	}
	id, ok := claims[UserIDClaim].(string)
	if !ok {
		return uuid.Nil, ErrNoUser
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrNoUser
	}
	return parsed, nil
}
