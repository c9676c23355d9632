package rest

import (
	"fmt"
	"net/http"

	"blue/core"
	"blue/handler/render"

	"github.com/holiman/uint256"
)

func marketHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := marketIDParam(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		timestamp, err := bindTimestamp(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		view, err := markets.Market(r.Context(), id, timestamp)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.Data(w, view)
	}
}

func positionsHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := marketIDParam(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		timestamp, err := bindTimestamp(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		views, err := markets.Positions(r.Context(), id, timestamp)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.Data(w, views)
	}
}

func positionHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := marketIDParam(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		user, err := addressParam(r, "user")
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		timestamp, err := bindTimestamp(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		view, err := markets.Position(r.Context(), user, id, timestamp)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.Data(w, view)
	}
}

func preLiquidationHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := marketIDParam(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		user, err := addressParam(r, "user")
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		timestamp, err := bindTimestamp(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		view, err := markets.PreLiquidation(r.Context(), user, id, timestamp)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.Data(w, view)
	}
}

type marketIDQuery struct {
	LoanToken       core.Address `schema:"loan_token,required"`
	CollateralToken core.Address `schema:"collateral_token,required"`
	Oracle          core.Address `schema:"oracle,required"`
	Irm             core.Address `schema:"irm,required"`
	Lltv            *uint256.Int `schema:"lltv,required"`
}

func marketIDHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q marketIDQuery
		if err := decoder.Decode(&q, r.URL.Query()); err != nil {
			render.BadRequest(w, fmt.Errorf("%v: %w", err, core.ErrInvalidInput))
			return
		}

		params := &core.MarketParams{
			LoanToken:       q.LoanToken,
			CollateralToken: q.CollateralToken,
			Oracle:          q.Oracle,
			Irm:             q.Irm,
			Lltv:            q.Lltv,
		}

		render.Data(w, render.H{
			"id":     params.ID(),
			"params": params,
		})
	}
}
