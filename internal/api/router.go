package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bloghub/blog-api/internal/api/graphql"
	"github.com/bloghub/blog-api/internal/api/handler"
	"github.com/bloghub/blog-api/internal/api/middleware"
	"github.com/bloghub/blog-api/internal/core/ports"
	"github.com/bloghub/blog-api/internal/core/service"
	mongodb "github.com/bloghub/blog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bloghub/blog-api/internal/infrastructure/db/redis"
	"github.com/bloghub/blog-api/internal/infrastructure/storage"
)

// Options bundles the dependencies the router wires together.
type Options struct {
	Mongo      *mongo.Database
	Redis      *redis.Client // nil disables the posts-page cache
	JWTSecret  string
	Store      *storage.DiskStore
	Janitor    *storage.Janitor
	CORSOrigin string
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{opts.CORSOrigin},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("blog"))
	e.Use(middleware.Auth(opts.JWTSecret))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(opts.Mongo)
	postRepo := mongodb.NewPostRepository(opts.Mongo)

	var cache ports.PostCache
	if opts.Redis != nil {
		cache = redisdb.NewPostCache(opts.Redis)
	}

	authService := service.NewAuthService(userRepo, opts.JWTSecret, time.Hour, opts.Logger)
	postService := service.NewPostService(postRepo, userRepo, cache, opts.Janitor, opts.Logger)

	graphqlHandler := graphql.NewHandler(authService, postService, opts.Logger)
	uploadHandler := handler.NewUploadHandler(opts.Store, opts.Janitor, opts.Logger)

	// --- API routes ---
	e.POST("/graphql", graphqlHandler.Serve)
	e.POST("/post_image", uploadHandler.Upload)
	e.Static("/"+storage.PublicPrefix, opts.Store.Dir())

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(opts.Mongo, opts.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
