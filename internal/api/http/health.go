package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthResponse reports the service and the two backends it cannot run
// without: the project database and the attachment store.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db,omitempty"`
	Uploads   string    `json:"uploads,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	db          *pgxpool.Pool
	uploads     string
}

// NewHealthHandler wires the health endpoint. uploadsBackend names the
// configured attachment store ("local" or "s3"); db may be nil in tests.
func NewHealthHandler(serviceName, version string, db *pgxpool.Pool, uploadsBackend string) *HealthHandler {
	if uploadsBackend == "" {
		uploadsBackend = "disabled"
	}
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
		uploads:     uploadsBackend,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        h.dbStatus(c.Request.Context()),
		Uploads:   h.uploads,
	})
}

// dbStatus pings with a short deadline so a stalled pool cannot hang the
// health endpoint.
func (h *HealthHandler) dbStatus(ctx context.Context) string {
	if h.db == nil {
		return "disabled"
	}

	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := h.db.Ping(pingCtx); err != nil {
		return "down"
	}
	return "up"
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
