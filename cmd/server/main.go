package main

import (
	"flag"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"fincast/internal/config"
	"fincast/internal/handler"
	"fincast/internal/version"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	log := logrus.New()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	log.WithField("version", version.Get().Version).Infof("Starting forecast API on %s", cfg.ListenAddr)

	h := handler.New(log, cfg)
	router := SetupRouter(h)

	log.Fatal(http.ListenAndServe(cfg.ListenAddr, router))
}

// SetupRouter wires all API routes. Split out so tests can mount the
// router on an httptest server.
func SetupRouter(h *handler.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/api/health", h.Health)
	r.Get("/api/version", h.Version)

	r.Route("/api/forecast", func(r chi.Router) {
		r.Post("/occurrences", h.Occurrences)
		r.Post("/interest", h.Interest)
		r.Post("/timeline", h.Timeline)
		r.Post("/payoff", h.Payoff)
		r.Post("/payoff/compare", h.Compare)
		r.Post("/milestone", h.Milestone)
	})

	return r
}
