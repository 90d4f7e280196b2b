package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/user/video-generator-service/internal/delivery/http/handler"
	"github.com/user/video-generator-service/internal/delivery/http/middleware"
)

func New(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)

	r.Get("/health", h.HandleHealthCheck)
	r.Post("/generate-video", h.HandleGenerateVideo)
	r.Get("/videos-list", h.HandleListVideos)
	r.Get("/videos/{filename}", h.HandleGetVideo)

	r.Route("/api", func(r chi.Router) {
		r.Get("/renders/{id}", h.HandleGetRenderStatus)
		r.Get("/videos/{filename}", h.HandleGetVideoInfo)
	})

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
