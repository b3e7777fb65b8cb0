package handler

import (
	"net/http"

	"lending/core"
	"lending/handler/render"
	"lending/handler/rest"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	ledger       core.LedgerService
	banks        core.BankStore
	users        core.UserStore
	transactions core.TransactionStore
}

// New new server function
func New(
	ledger core.LedgerService,
	banks core.BankStore,
	users core.UserStore,
	transactions core.TransactionStore,
) Server {
	return Server{
		ledger:       ledger,
		banks:        banks,
		users:        users,
		transactions: transactions,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(render.WrapResponse(false))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	r.Mount("/", rest.Handle(s.ledger, s.banks, s.users, s.transactions))
	return r
}
