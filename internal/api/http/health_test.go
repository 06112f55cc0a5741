package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckWithoutDB(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHealthHandler("protrack-backend", "1.2.3", nil, "local").RegisterRoutes(r)

	for _, path := range []string{"/health", "/healthz"} {
		req := httptest.NewRequest("GET", path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, path)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "protrack-backend", resp.Service)
		assert.Equal(t, "1.2.3", resp.Version)
		assert.Equal(t, "disabled", resp.DB)
		assert.Equal(t, "local", resp.Uploads)
		assert.False(t, resp.Timestamp.IsZero())
	}
}

func TestHealthCheckReportsUploadsBackend(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, tc := range []struct {
		backend string
		want    string
	}{
		{"s3", "s3"},
		{"local", "local"},
		{"", "disabled"},
	} {
		r := gin.New()
		NewHealthHandler("protrack-backend", "1.2.3", nil, tc.backend).RegisterRoutes(r)

		req := httptest.NewRequest("GET", "/health", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, tc.want, resp.Uploads, "backend %q", tc.backend)
	}
}
