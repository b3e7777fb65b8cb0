package rest

import (
	"net/http"
	"time"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"

	"github.com/go-chi/chi"
)

// response user transactions
func transactionsHandler(transactions core.TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Offset string `json:"offset"`
			Limit  int    `json:"limit"`
		}

		if e := param.Binding(r, &params); e != nil {
			render.BadRequest(w, e)
			return
		}

		limit := params.Limit
		if limit <= 0 || limit > 500 {
			limit = 500
		}

		offsetTime, err := time.Parse(time.RFC3339Nano, params.Offset)
		if err != nil {
			offsetTime = time.Time{}
		}

		list, e := transactions.ListByOwner(ctx, chi.URLParam(r, "owner"), offsetTime, limit)
		if e != nil {
			render.Error(w, e)
			return
		}

		render.JSON(w, list)
	}
}
