package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
	"lending/pkg/compound"

	"github.com/go-chi/chi"
)

func initUserHandler(ledger core.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Owner          string `json:"owner" valid:"required"`
			PrimaryAssetID string `json:"primary_asset_id" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		user, err := ledger.InitUser(r.Context(), params.Owner, params.PrimaryAssetID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, user)
	}
}

func findUserHandler(users core.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := users.Find(r.Context(), chi.URLParam(r, "owner"))
		if err != nil {
			render.Error(w, err)
			return
		}

		if user.ID == 0 {
			render.Error(w, compound.Require(false, "user", core.ErrUserNotFound))
			return
		}

		render.JSON(w, user)
	}
}

func healthHandler(ledger core.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health, err := ledger.Health(r.Context(), chi.URLParam(r, "owner"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, health)
	}
}
