package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"

	httpapi "github.com/protrack-dev/protrack-backend/internal/api/http"
	apimw "github.com/protrack-dev/protrack-backend/internal/api/http/middleware"
	authhttp "github.com/protrack-dev/protrack-backend/internal/auth/http"
	authmw "github.com/protrack-dev/protrack-backend/internal/auth/middleware"
	"github.com/protrack-dev/protrack-backend/internal/auth/tokencache"
	projectshttp "github.com/protrack-dev/protrack-backend/internal/projects/http"
	projectsrepo "github.com/protrack-dev/protrack-backend/internal/projects/repository"
	projectssvc "github.com/protrack-dev/protrack-backend/internal/projects/service"
	"github.com/protrack-dev/protrack-backend/internal/storage/uploads"
	taskshttp "github.com/protrack-dev/protrack-backend/internal/tasks/http"
	tasksrepo "github.com/protrack-dev/protrack-backend/internal/tasks/repository"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	DB             *pgxpool.Pool
	Verifier       authmw.TokenVerifier
	TokenCache     *tokencache.Cache // nil disables caching
	Uploads uploads.Store
	// UploadsBackend names the configured attachment store for /health.
	UploadsBackend string
	// LocalUploadsDir, when set, is served statically under UploadsBaseURL.
	LocalUploadsDir string
	UploadsBaseURL  string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimw.RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.UploadsBackend)
	healthHandler.RegisterRoutes(r)

	if dep.LocalUploadsDir != "" {
		r.Static(dep.UploadsBaseURL, dep.LocalUploadsDir)
	}

	api := r.Group("/api")
	api.Use(authmw.FirebaseAuth(dep.Verifier, dep.TokenCache))
	api.Use(apimw.RateLimit(rate.Limit(20), 40))

	authhttp.RegisterMe(api)

	projectRepo := projectsrepo.NewRepo(dep.DB)
	projectSvc := projectssvc.New(projectRepo, dep.Uploads)

	projectsGroup := api.Group("/projects")
	projectshttp.New(projectSvc).Register(projectsGroup)
	taskshttp.New(tasksrepo.NewRepo(dep.DB)).Register(projectsGroup)

	return r
}
