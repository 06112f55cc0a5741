package http

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/protrack-dev/protrack-backend/internal/auth"
	"github.com/protrack-dev/protrack-backend/internal/projects/service"
)

// attach handles POST /:id/attachments. The success response is sent only
// after the file write and the metadata append have both completed.
func (h *Handler) attach(c *gin.Context) {
	uid := auth.UserUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files were uploaded."})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer f.Close()

	// Base strips any client-supplied directory parts from the display name.
	fileName := filepath.Base(fh.Filename)

	_, att, err := h.svc.Attach(c.Request.Context(), uid, c.Param("id"), fileName, f)
	if err != nil {
		var se *service.StorageWriteError
		if errors.As(err, &se) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "File upload failed"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded",
		"fileName": att.FileName,
		"filePath": att.FilePath,
	})
}
