package rest

import (
	"net/http"

	"blue/core"
	"blue/handler/render"
)

func vaultHandler(vaults core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address, err := addressParam(r, "address")
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		timestamp, err := bindTimestamp(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		view, err := vaults.Vault(r.Context(), address, timestamp)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.Data(w, view)
	}
}

func vaultV2Handler(vaults core.IVaultService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address, err := addressParam(r, "address")
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		timestamp, err := bindTimestamp(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		view, err := vaults.VaultV2(r.Context(), address, timestamp)
		if err != nil {
			render.Err(w, err)
			return
		}

		render.Data(w, view)
	}
}
