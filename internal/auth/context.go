package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserUID   = "user_uid"
	CtxUserEmail = "user_email"
)

// UserUID extracts the authenticated principal's uid from the Gin context.
// It is set by the auth middleware; empty means unauthenticated.
func UserUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserUID))
}

// UserEmail returns the principal's email when the token carried one.
func UserEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserEmail))
}
