package rest

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"blue/core"
	"blue/handler/render"

	"github.com/go-chi/chi"
	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// Handle handle rest api request
func Handle(markets core.IMarketService, vaults core.IVaultService) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/market-id", marketIDHandler())

	router.Route("/markets/{id}", func(r chi.Router) {
		r.Get("/", marketHandler(markets))
		r.Get("/positions", positionsHandler(markets))
		r.Get("/positions/{user}", positionHandler(markets))
		r.Get("/pre-liquidations/{user}", preLiquidationHandler(markets))
	})

	router.Get("/vaults/{address}", vaultHandler(vaults))
	router.Get("/vaults-v2/{address}", vaultV2Handler(vaults))

	return router
}

type timestampQuery struct {
	// Timestamp unix seconds views are accrued to, zero means now
	Timestamp uint64 `schema:"timestamp"`
}

func bindTimestamp(r *http.Request) (uint64, error) {
	var q timestampQuery
	if err := decoder.Decode(&q, r.URL.Query()); err != nil {
		return 0, fmt.Errorf("invalid query: %w", core.ErrInvalidInput)
	}

	if q.Timestamp == 0 {
		return uint64(time.Now().Unix()), nil
	}

	return q.Timestamp, nil
}

func marketIDParam(r *http.Request) (core.MarketID, error) {
	id, err := core.HexToHash(chi.URLParam(r, "id"))
	if err != nil {
		return core.MarketID{}, fmt.Errorf("invalid market id: %w", core.ErrInvalidInput)
	}

	return id, nil
}

func addressParam(r *http.Request, key string) (core.Address, error) {
	address, err := core.HexToAddress(chi.URLParam(r, key))
	if err != nil {
		return core.Address{}, fmt.Errorf("invalid %s: %w", key, core.ErrInvalidInput)
	}

	return address, nil
}
