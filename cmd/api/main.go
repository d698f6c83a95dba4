package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"floppahub-rest-api/internal/cache"
	"floppahub-rest-api/internal/config"
	"floppahub-rest-api/internal/handler"
	"floppahub-rest-api/internal/middleware"
	"floppahub-rest-api/internal/repository"
	"floppahub-rest-api/internal/router"
	"floppahub-rest-api/internal/service"
	"floppahub-rest-api/internal/upstream/chat"
	"floppahub-rest-api/internal/upstream/downloader"
	"floppahub-rest-api/internal/upstream/freestuff"
	"floppahub-rest-api/internal/upstream/imgbb"
	"floppahub-rest-api/internal/upstream/lastfm"

	_ "github.com/go-sql-driver/mysql"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting FloppaHub API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize registry repository based on config
	var registryRepo repository.RegistryRepository
	switch cfg.Registry.Backend {
	case "sqlite":
		sqliteRepo, err := repository.NewSQLiteRegistryRepository(cfg.Registry.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite registry: %v", err)
		}
		registryRepo = sqliteRepo
		log.Println("SQLite registry repository initialized")
	case "mysql":
		db, err := sql.Open("mysql", cfg.Registry.MySQLDSN())
		if err != nil {
			log.Fatalf("Failed to open MySQL connection: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		mysqlRepo, err := repository.NewMySQLRegistryRepository(db)
		if err != nil {
			log.Fatalf("Failed to initialize MySQL registry: %v", err)
		}
		registryRepo = mysqlRepo
		log.Println("MySQL registry repository initialized")
	default: // file
		fileRepo, err := repository.NewFileRegistryRepository(cfg.Registry.FilePath)
		if err != nil {
			log.Fatalf("Failed to initialize file registry: %v", err)
		}
		registryRepo = fileRepo
		log.Println("File registry repository initialized")
	}
	defer registryRepo.Close()

	// Initialize last-game-id marker
	markerRepo, err := repository.NewFileMarkerRepository(cfg.Registry.MarkerPath)
	if err != nil {
		log.Fatalf("Failed to initialize marker file: %v", err)
	}

	// Initialize upstream response cache based on config
	var upstreamCache cache.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cache.RedisCacheConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Printf("Warning: Redis cache unavailable, falling back to memory: %v", err)
			upstreamCache = cache.NewMemoryCache()
		} else {
			upstreamCache = redisCache
			log.Println("Redis cache initialized")
		}
	default: // memory
		upstreamCache = cache.NewMemoryCache()
		log.Println("Memory cache initialized")
	}

	// Initialize upstream clients
	up := cfg.Upstream
	feedClient := freestuff.NewClient(up.FreeStuffBaseURL, up.FreeStuffAPIKey, up.FreeStuffLang, up.Timeout)
	imageClient := imgbb.NewClient(up.ImgBBBaseURL, up.ImgBBAPIKey, up.ImgBBExpiration, up.Timeout)
	scrobbleClient := lastfm.NewClient(up.LastFMBaseURL, up.LastFMAPIKey, up.Timeout, upstreamCache, cfg.Cache.TTL)
	downloaderClient := downloader.NewClient(up.DownloaderBaseURL, up.DownloaderAPIKey, up.DownloaderHost, up.Timeout)
	chatClient := chat.NewClient(up.ChatBaseURL, up.ChatAPIKey, up.ChatModel, up.Timeout)

	// Initialize services
	alertService := service.NewAlertService(feedClient, imageClient, markerRepo)
	scrobbleService := service.NewScrobbleService(scrobbleClient, registryRepo)

	// Initialize handlers
	healthHandler := handler.New(cfg.App.Version)
	alertHandler := handler.NewAlertHandler(alertService)
	fmHandler := handler.NewFMHandler(scrobbleService)
	downloaderHandler := handler.NewDownloaderHandler(downloaderClient)
	chatHandler := handler.NewChatHandler(chatClient)
	docsHandler := handler.NewDocsHandler()

	// Create auth middleware with injected dependencies
	authMiddleware := middleware.NewAuthMiddleware(middleware.AuthConfig{
		APIKeys: cfg.Auth.Keys(),
	})

	// Alert route allows one pass per window per client
	alertLimiter := middleware.NewRateLimiter(config.AlertRateWindow, 1)

	// Create router
	r := router.New(router.Config{
		Handler:           healthHandler,
		AlertHandler:      alertHandler,
		FMHandler:         fmHandler,
		DownloaderHandler: downloaderHandler,
		ChatHandler:       chatHandler,
		DocsHandler:       docsHandler,
		AuthMiddleware:    authMiddleware,
		AlertRateLimiter:  alertLimiter,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
