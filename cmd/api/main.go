package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/tavonga/decora-backend/internal/modules/assets"
	"github.com/tavonga/decora-backend/internal/modules/auth"
	"github.com/tavonga/decora-backend/internal/modules/cart"
	"github.com/tavonga/decora-backend/internal/modules/catalog"
	"github.com/tavonga/decora-backend/internal/modules/editor"
	"github.com/tavonga/decora-backend/internal/modules/imageproxy"
	"github.com/tavonga/decora-backend/internal/modules/merchant"
	"github.com/tavonga/decora-backend/internal/modules/product"
	"github.com/tavonga/decora-backend/internal/modules/resolve"
	"github.com/tavonga/decora-backend/internal/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal("failed to open database", "error", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("failed to reach database", "error", err)
	}
	log.Info("connected to database")

	// Previews degrade to inline embedding when no bucket is configured.
	var store assets.BlobStore
	store, err = assets.NewBucketStore(context.Background())
	if err != nil {
		log.Warn("preview bucket unavailable, previews will be embedded", "error", err)
		store = assets.Unavailable{Reason: err.Error()}
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Identity ────────────────────────────────────────────
	merchantRepo := merchant.NewPostgresRepository(db)
	merchantService := merchant.NewService(merchantRepo)
	merchant.NewHandler(merchantService).RegisterRoutes(router)

	authService := auth.NewService(merchantRepo)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Definitions & Catalog ───────────────────────────────
	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	product.NewHandler(productService).RegisterRoutes(router)

	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo, log)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Region Editor ───────────────────────────────────────
	editorManager := editor.NewManager(productService, editor.NewFrameScheduler(0))
	editor.NewHandler(editorManager).RegisterRoutes(router)

	// ── Resolution Engine ───────────────────────────────────
	resolveService := resolve.NewService(productRepo, catalogService)
	resolve.NewHandler(resolveService).RegisterRoutes(router)

	// ── Image Proxy ─────────────────────────────────────────
	proxy := imageproxy.New(store, log)
	imageproxy.NewHandler(proxy).RegisterRoutes(router)

	// ── Cart ────────────────────────────────────────────────
	cartRepo := cart.NewPostgresRepository(db)
	serializer := cart.NewSerializer(store, log)
	cartService := cart.NewService(resolveService, serializer, cartRepo)
	cart.NewHandler(cartService).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	log.Info("decora API server starting", "port", port)
	log.Fatal("server stopped", "error", http.ListenAndServe(":"+port, router))
}
