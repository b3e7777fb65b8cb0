package rest

import (
	"errors"
	"net/http"

	"lending/core"
	"lending/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	ledger core.LedgerService,
	banks core.BankStore,
	users core.UserStore,
	transactions core.TransactionStore,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Route("/banks", func(r chi.Router) {
		r.Get("/", listBanksHandler(banks))
		r.Post("/", initBankHandler(ledger))
		r.Get("/{asset}", findBankHandler(banks))
	})

	router.Route("/users", func(r chi.Router) {
		r.Post("/", initUserHandler(ledger))
		r.Get("/{owner}", findUserHandler(users))
		r.Get("/{owner}/health", healthHandler(ledger))
		r.Get("/{owner}/transactions", transactionsHandler(transactions))
	})

	router.Post("/deposit", operationHandler(ledger.Deposit))
	router.Post("/withdraw", operationHandler(ledger.Withdraw))
	router.Post("/borrow", operationHandler(ledger.Borrow))
	router.Post("/repay", operationHandler(ledger.Repay))
	router.Post("/liquidate", liquidateHandler(ledger))

	return router
}
