package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/protrack-dev/protrack-backend/config"
	"github.com/protrack-dev/protrack-backend/internal/auth"
	"github.com/protrack-dev/protrack-backend/internal/auth/tokencache"
	"github.com/protrack-dev/protrack-backend/internal/bootstrap"
	"github.com/protrack-dev/protrack-backend/internal/storage/postgres"
	"github.com/protrack-dev/protrack-backend/internal/storage/uploads"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	authClient, err := auth.InitializeFirebase(&cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}

	var cache *tokencache.Cache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("redis unreachable, token cache disabled: %v", err)
		} else {
			cache = tokencache.New(rdb)
		}
	}

	deps := bootstrap.RouterDeps{
		ServiceName:    "protrack-backend",
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		DB:             pool,
		Verifier:       authClient,
		TokenCache:     cache,
		UploadsBaseURL: cfg.Uploads.BaseURL,
	}

	if cfg.Uploads.S3Bucket != "" {
		store, err := uploads.NewS3Store(ctx, cfg.Uploads.S3Bucket, cfg.Uploads.S3Region)
		if err != nil {
			log.Fatalf("uploads: %v", err)
		}
		deps.Uploads = store
		deps.UploadsBackend = "s3"
	} else {
		store, err := uploads.NewLocalStore(cfg.Uploads.Dir, cfg.Uploads.BaseURL)
		if err != nil {
			log.Fatalf("uploads: %v", err)
		}
		deps.Uploads = store
		deps.UploadsBackend = "local"
		deps.LocalUploadsDir = store.Dir()
	}

	r := bootstrap.BuildRouter(deps)

	log.Printf("listening on :%s", cfg.Server.Port)
	log.Fatal(r.Run(":" + cfg.Server.Port))
}
