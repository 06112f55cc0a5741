package uploads

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes attachment bytes to durable storage. Save must not return
// until the write is confirmed; callers persist attachment metadata only
// after Save succeeds. The returned path is what clients receive as
// filePath.
type Store interface {
	Save(ctx context.Context, key string, r io.Reader) (string, error)
}

// NewKey derives a storage key for an uploaded file. The key is a fresh
// uuid plus the sanitized extension of the original filename, so untrusted
// names never become path components. The original name is kept only as
// display metadata on the attachment record.
func NewKey(fileName string) string {
	return uuid.New().String() + safeExt(fileName)
}

func safeExt(fileName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(fileName)))
	if ext == "" || ext == "." || len(ext) > 16 {
		return ""
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return ext
}
