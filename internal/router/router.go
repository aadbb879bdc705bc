package api

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appMiddleware "github.com/FACorreiaa/tripster-api/app/middleware"
	_ "github.com/FACorreiaa/tripster-api/docs"
	"github.com/FACorreiaa/tripster-api/internal/api/travel"
)

// Config contains dependencies needed for the router setup
type Config struct {
	TravelHandler  *travel.Handler
	AllowedOrigins []string
	// StaticDir, when set, is served at / for the web client.
	StaticDir string
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (like logger, requestID, recoverer) are expected
// to be applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()
	r.NotFound(appMiddleware.NotFound)
	r.MethodNotAllowed(appMiddleware.MethodNotAllowed)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Get("/places", cfg.TravelHandler.GetPlace)
		r.Get("/hotels", cfg.TravelHandler.GetHotels)
		r.Get("/reviews", cfg.TravelHandler.GetReviews)
		r.Get("/nearby", cfg.TravelHandler.GetNearbyAttractions)
		r.Post("/plan", cfg.TravelHandler.CreatePlan)
	})

	if cfg.StaticDir != "" {
		if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
			r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
		}
	}

	return r
}
