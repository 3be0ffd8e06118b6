package api

import (
	_ "coindesk/docs"
	"coindesk/internal/price/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(priceHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Route("/api/coindesk", func(r chi.Router) {
		r.Post("/create", priceHandler.Create)
		r.Post("/read/{id}", priceHandler.Read)
		r.Post("/update/{id}", priceHandler.Update)
		r.Post("/delete/{id}", priceHandler.Delete)
		r.Post("/all", priceHandler.List)
		r.Post("/fetch", priceHandler.Fetch)
	})
	return router
}
