package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/protrack-dev/protrack-backend/internal/auth"
	"github.com/protrack-dev/protrack-backend/internal/auth/tokencache"
)

// TokenVerifier is satisfied by *firebase auth.Client; tests plug in fakes.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseAuth validates bearer ID tokens and stores the principal in the
// context. Controllers never see a request without a resolved principal.
// cache may be nil; then every request hits the verifier.
func FirebaseAuth(verifier TokenVerifier, cache *tokencache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		if cache != nil {
			if uid := cache.Get(c.Request.Context(), token); uid != "" {
				c.Set(auth.CtxUserUID, uid)
				c.Next()
				return
			}
		}

		decoded, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(auth.CtxUserUID, decoded.UID)
		if email, ok := decoded.Claims["email"].(string); ok {
			c.Set(auth.CtxUserEmail, email)
		}

		if cache != nil {
			cache.Set(c.Request.Context(), token, decoded.UID)
		}

		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
