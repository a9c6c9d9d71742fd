package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/pantry-chef/internal/api"
	apiMiddleware "github.com/phrazzld/pantry-chef/internal/api/middleware"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	pageHandler, err := api.NewPageHandler(app.registry, app.logger,
		api.WithSecureCookie(app.config.Server.SecureCookie))
	if err != nil {
		return nil, err
	}
	recipeHandler := api.NewRecipeHandler(app.generator, app.logger)

	r.Get("/", pageHandler.ShowForm)
	r.Post("/", pageHandler.SubmitForm)

	r.Route("/api", func(r chi.Router) {
		r.Post("/recipes", recipeHandler.GenerateRecipes)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r, nil
}
