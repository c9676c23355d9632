package handler

import (
	"net/http"

	"blue/core"
	"blue/handler/hc"
	"blue/handler/rest"
	"blue/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
)

// Server server
type Server struct {
	markets core.IMarketService
	vaults  core.IVaultService
	version string
}

// New new server function
func New(
	markets core.IMarketService,
	vaults core.IVaultService,
	version string,
) Server {
	return Server{
		markets: markets,
		vaults:  vaults,
		version: version,
	}
}

// Handler root handler with the shared middleware stack
func (s Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(logger.WithRequestID)
	mux.Use(middleware.Logger)
	mux.Use(middleware.NewCompressor(5).Handler)

	mux.Mount("/hc", hc.Handle(s.version))
	mux.Mount("/api", s.HandleRestAPI())

	return mux
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	return rest.Handle(s.markets, s.vaults)
}
