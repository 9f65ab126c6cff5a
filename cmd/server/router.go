package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/popeskul/lead-messenger/internal/api"
)

func setupRouter(handler api.ServerInterface) http.Handler {
	r := chi.NewRouter()

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, "api/openapi.yaml")
	})

	r.Mount("/", api.Handler(handler))

	return r
}
