package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
	"lending/handler/views"
	"lending/pkg/compound"

	"github.com/go-chi/chi"
)

func listBanksHandler(banks core.BankStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := banks.All(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.BankViews(all))
	}
}

func findBankHandler(banks core.BankStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bank, err := banks.Find(r.Context(), chi.URLParam(r, "asset"))
		if err != nil {
			render.Error(w, err)
			return
		}

		if bank.ID == 0 {
			render.Error(w, compound.Require(false, "bank", core.ErrBankNotFound))
			return
		}

		render.JSON(w, views.BankView(bank))
	}
}

func initBankHandler(ledger core.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params core.BankParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		bank, err := ledger.InitBank(r.Context(), &params)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.BankView(bank))
	}
}
