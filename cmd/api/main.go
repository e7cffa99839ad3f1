package main

import (
	"log"
	"net/http"

	_ "productosml/docs" // swagger docs

	"productosml/internal/cache"
	"productosml/internal/config"
	"productosml/internal/db"
	"productosml/internal/handler"
	"productosml/internal/repository"
	"productosml/internal/service"
	"productosml/internal/source"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title ProductosML Hybrid Recommender API
// @version 1.0
// @description Recomendador híbrido de productos (colaborativo + contenido, reentrena por consulta)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// Mongo solo si hay URI (el historial es opcional)
	var recRepo *repository.RecommendationRepository
	if cfg.MongoURI != "" {
		db.InitMongo(cfg)
		recRepo = repository.NewRecommendationRepository()
	}

	// Redis solo si el cache por fingerprint está habilitado;
	// por defecto cada consulta reentrena desde el snapshot
	if cfg.CacheEnabled {
		cache.InitRedis(cfg)
	}

	// cliente del snapshot upstream
	src := source.NewClient(cfg.BaseURL, cfg.RecommenderEndpoint)

	// services
	recSvc := service.NewRecommendService(
		src,
		recRepo,
		cfg.NumRecommendations,
		cfg.CacheEnabled,
		cfg.CacheTTLSeconds,
	)

	// handlers
	recH := handler.NewRecommendHandler(recSvc)
	adminH := handler.NewAdminHandler(recSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/recommendations/{userId}", recH.GetRecommendations)

		// WebSocket con progreso del pipeline
		r.Get("/ws/recommendations/{userId}", recH.GetRecommendationsWS)
	})

	// ===========================
	// Rutas de mantenimiento (JWT admin)
	// ===========================
	r.Group(func(r chi.Router) {
		r.Use(handler.JWTAuth(cfg.JWTSecret))
		r.Use(handler.AdminOnly())

		handler.MountAdminRoutes(r, adminH)
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
