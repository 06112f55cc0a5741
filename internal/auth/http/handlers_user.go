package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/protrack-dev/protrack-backend/internal/auth"
)

// RegisterMe exposes the resolved principal, mostly so clients can confirm
// their token works.
func RegisterMe(rg *gin.RouterGroup) {
	rg.GET("/me", me)
}

func me(c *gin.Context) {
	uid := auth.UserUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uid":   uid,
		"email": auth.UserEmail(c),
	})
}
