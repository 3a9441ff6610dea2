package app

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tigermarine/internal/config"
	"tigermarine/internal/database"
	"tigermarine/internal/domain/admin"
	"tigermarine/internal/domain/catalog"
	"tigermarine/internal/domain/inquiry"
	"tigermarine/internal/domain/media"
	"tigermarine/internal/domain/upload"
	"tigermarine/internal/middleware"
	"tigermarine/internal/notification"
	"tigermarine/internal/pkg/jwt"
)

const version = "1.0.0"

// App holds the wired services shared by the API server and the CLI.
type App struct {
	Config *config.Config
	Log    *zap.Logger
	DB     *gorm.DB
	JWT    *jwt.Service

	Resolver  *media.Resolver
	Paths     *media.PathBuilder
	Uploads   *upload.Service
	Catalog   *catalog.Service
	Hub       *inquiry.Hub
	Inquiries *inquiry.Service
	Admins    *admin.Service
}

// New connects the database, migrates the schema and builds every service.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, entities()...); err != nil {
		return nil, err
	}

	aliases, err := media.LoadFolderAliases(cfg.MediaAliasesFile)
	if err != nil {
		return nil, err
	}
	resolver, err := media.NewResolver(cfg.MediaRoot)
	if err != nil {
		return nil, err
	}
	paths := media.NewPathBuilder(aliases)
	jwtService := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	uploads := upload.NewService(resolver, paths, upload.NewLocalStorage(), log.Named("upload"),
		upload.WithMaxFileSize(cfg.MaxUploadBytes),
		upload.WithMaxFiles(cfg.MaxUploadFiles),
	)

	sender := notification.NewSender(cfg.ResendAPIKey, cfg.EmailFrom, log.Named("email"))
	mailer := notification.NewMailer(sender, []string{cfg.ContactEmail}, log.Named("email"))
	hub := inquiry.NewHub(log.Named("ws"))

	return &App{
		Config:    cfg,
		Log:       log,
		DB:        db,
		JWT:       jwtService,
		Resolver:  resolver,
		Paths:     paths,
		Uploads:   uploads,
		Catalog:   catalog.NewService(catalog.NewRepository(db), paths, log.Named("catalog")),
		Hub:       hub,
		Inquiries: inquiry.NewService(inquiry.NewRepository(db), mailer, hub, log.Named("inquiry")),
		Admins:    admin.NewService(admin.NewAdminRepository(db), jwtService, log.Named("admin")),
	}, nil
}

func entities() []any {
	var all []any
	all = append(all, catalog.Entities()...)
	all = append(all, inquiry.Entities()...)
	all = append(all, admin.Entities()...)
	return all
}

// Router builds the HTTP handler: static media, health and the /api routes.
func (a *App) Router() *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(a.Log.Named("http")),
		middleware.CORS(a.Config.CORSAllowedOrigins),
	)

	root := a.Resolver.Root()
	r.Static("/"+media.ImagesDir, filepath.Join(root, media.ImagesDir))
	r.Static("/"+media.CustomizerDir, filepath.Join(root, media.CustomizerDir))

	guard := middleware.AdminGuard(a.JWT, a.Config.AdminAuthRequired)

	api := r.Group("/api")
	api.GET("/health", a.health)
	api.GET("", index)

	upload.NewHandler(a.Uploads).RegisterRoutes(api, guard)
	catalog.NewHandler(a.Catalog).RegisterRoutes(api, guard)
	inquiry.NewHandler(a.Inquiries, a.Hub, a.JWT, a.Config.AdminAuthRequired, a.Config.CORSAllowedOrigins, a.Log.Named("ws")).
		RegisterRoutes(api, guard)
	admin.NewAuthHandler(a.Admins).RegisterRoutes(api)

	return r
}

// Close disconnects websocket clients and the database.
func (a *App) Close() error {
	a.Hub.Close()
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (a *App) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, dbState := "ok", "connected"
	code := http.StatusOK
	if sqlDB, err := a.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status, dbState = "degraded", "unreachable"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"message":   "Tiger Marine Backend API is running",
		"database":  dbState,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Tiger Marine Backend API",
		"version": version,
		"endpoints": gin.H{
			"health":     "/api/health",
			"models":     "/api/models",
			"categories": "/api/categories",
			"upload":     "/api/upload",
			"inquiries":  "/api/inquiries",
		},
	})
}

// Addr is the listen address for the configured port.
func (a *App) Addr() string {
	return fmt.Sprintf(":%s", a.Config.Port)
}
