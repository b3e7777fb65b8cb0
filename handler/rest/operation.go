package rest

import (
	"context"
	"net/http"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
)

type operationFunc func(ctx context.Context, req *core.Request) (*core.Transaction, error)

func operationHandler(fn operationFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req core.Request
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		tx, err := fn(r.Context(), &req)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, tx)
	}
}

func liquidateHandler(ledger core.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req core.LiquidateRequest
		if err := param.Binding(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		tx, err := ledger.Liquidate(r.Context(), &req)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, tx)
	}
}
