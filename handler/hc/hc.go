package hc

import (
	"net/http"
	"time"

	"blue/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Handle handle hc request
func Handle(ver string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver))
	return r
}

func handle(version string) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		render.JSON(w, render.H{
			"uptime":    now.Sub(b).Truncate(time.Millisecond).String(),
			"version":   version,
			"timestamp": now.Unix(),
		})
	}
}
