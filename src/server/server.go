package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	app "github.com/ruopp93-dot/INKCRAFTE/src/app"
	cfg "github.com/ruopp93-dot/INKCRAFTE/src/configuration"
	db "github.com/ruopp93-dot/INKCRAFTE/src/repository"
)

// NewRouter wires the asset store, session auth and contact store into
// the gin engine. The asset backend is chosen here, once, from the
// configuration; handlers never branch on it.
func NewRouter(config *cfg.Properties, assets app.AssetStore, contacts db.ContactDB) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	pprof.Register(router)

	handler := NewHandler(config, assets, contacts)

	router.GET("/health", handler.GetHealth)

	api := router.Group("/api")
	api.GET("/auth/status", handler.AuthStatus)
	api.POST("/auth/login", handler.Login)
	api.POST("/auth/logout", handler.Logout)

	api.GET("/photos", handler.GetPhotos)
	api.POST("/photos", handler.requireAuth, handler.PostPhotos)
	api.DELETE("/photos", handler.requireAuth, handler.DeletePhoto)
	api.DELETE("/photos/:name", handler.requireAuth, handler.DeletePhoto)

	api.POST("/avatar", handler.requireAuth, handler.PostAvatar)
	api.DELETE("/avatar", handler.requireAuth, handler.DeleteAvatar)

	api.GET("/contact", handler.GetContact)
	api.PUT("/contact", handler.requireAuth, handler.PutContact)

	router.Static("/uploads", config.Store.UploadsDir)
	router.NoRoute(serveStatic(config.Store.PublicDir))

	return router
}

func RunServer(config *cfg.Properties) {
	assets, err := newAssetStore(config)
	if err != nil {
		log.Fatalf("can not create asset store: %v", err)
	}
	contacts, err := db.NewContactDataBase(config)
	if err != nil {
		log.Fatalf("can not open contact db: %v", err)
	}

	router := NewRouter(config, assets, contacts)
	router.Run(fmt.Sprintf(":%s", config.Server.Port))
}

func newAssetStore(config *cfg.Properties) (app.AssetStore, error) {
	if config.UseRemote() {
		return app.NewMinioAssetStore(
			config.S3.Host,
			config.S3.AccessKey,
			config.S3.SecretKey,
			config.S3.Bucket,
			config.S3.Folder,
			config.S3.UseSSL)
	}
	return app.NewLocalAssetStore(config.Store.UploadsDir)
}

// serveStatic serves files from the public dir and falls back to
// index.html for unmatched GETs, so deep links into the single-page
// frontend resolve. API misses stay JSON 404s.
func serveStatic(publicDir string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet || strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			ctx.JSON(http.StatusNotFound, gin.H{})
			return
		}
		requested := filepath.Join(publicDir, filepath.Clean("/"+ctx.Request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			ctx.File(requested)
			return
		}
		ctx.File(filepath.Join(publicDir, "index.html"))
	}
}
