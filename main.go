package main

import (
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/copa-network/copa-console/pkg/auth"
	"github.com/copa-network/copa-console/pkg/config"
	"github.com/copa-network/copa-console/pkg/handlers"
	"github.com/copa-network/copa-console/pkg/middleware"
	"github.com/copa-network/copa-console/pkg/repositories"
	"github.com/copa-network/copa-console/pkg/services"
	"github.com/copa-network/copa-console/pkg/store"
	"github.com/copa-network/copa-console/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.String("assets_path", cfg.AssetsPath),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.Bool("reseed_enabled", cfg.ReseedEnabled()))

	auth.InitSessionStore(cfg.SessionSecret, cfg.BaseURL)

	jwksClient, err := auth.NewJWKSClient(&auth.JWKSConfig{
		EnableVerification: cfg.Auth.EnableVerification,
		Issuer:             cfg.Auth.AuthServerURL,
		JWKSURL:            cfg.Auth.JWKSURL,
	})
	if err != nil {
		logger.Fatal("Failed to create JWKS client", zap.Error(err))
	}
	authService := auth.NewAuthService(jwksClient)
	authMiddleware := auth.NewMiddleware(authService, logger)

	fileStore := store.NewFileStore(cfg.AssetsPath, logger)

	submissionsPath := filepath.Join(cfg.AssetsPath, "forms", "submissions.db")
	if err := os.MkdirAll(filepath.Dir(submissionsPath), 0o755); err != nil {
		logger.Fatal("Failed to create data directory", zap.Error(err))
	}
	submissionRepo, err := repositories.NewSubmissionRepository(submissionsPath)
	if err != nil {
		logger.Fatal("Failed to open submissions database", zap.Error(err))
	}
	defer func() { _ = submissionRepo.Close() }()

	catalogueRepo := repositories.NewCatalogueRepository(fileStore)
	categoryRepo := repositories.NewCategoryRepository(fileStore)
	vocabularyRepo := repositories.NewVocabularyRepository(fileStore)
	formRepo := repositories.NewFormRepository(fileStore)
	offerRepo := repositories.NewOfferRepository(fileStore)

	catalogueService := services.NewCatalogueService(catalogueRepo, categoryRepo, vocabularyRepo, fileStore, logger)
	vocabularyService := services.NewVocabularyService(vocabularyRepo, logger)
	formService := services.NewFormService(formRepo, submissionRepo, offerRepo, logger)

	mux := http.NewServeMux()

	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewCatalogueHandler(catalogueService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewCategoriesHandler(catalogueService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewVocabularyHandler(vocabularyService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewFormsHandler(formService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewAdminHandler(cfg, catalogueService, logger).RegisterRoutes(mux)
	handlers.NewAuthHandler(authService, cfg, logger).RegisterRoutes(mux)

	dist, err := fs.Sub(ui.DistFS(), "dist")
	if err != nil {
		logger.Fatal("Failed to access embedded UI", zap.Error(err))
	}
	mux.Handle("/", spaHandler(dist))

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting copa-console",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))

	if cfg.TLSCertPath != "" {
		err = http.ListenAndServeTLS(addr, cfg.TLSCertPath, cfg.TLSKeyPath, handler)
	} else {
		err = http.ListenAndServe(addr, handler)
	}
	if err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// spaHandler serves the embedded single-page app. Requests for files that
// exist are served as-is; client-side routes fall back to index.html.
func spaHandler(dist fs.FS) http.Handler {
	fileServer := http.FileServer(http.FS(dist))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/")
		if path == "" {
			path = "index.html"
		}

		if _, err := fs.Stat(dist, path); err != nil {
			// Client-side route: let the SPA router handle it.
			r.URL.Path = "/"
		}
		fileServer.ServeHTTP(w, r)
	})
}
