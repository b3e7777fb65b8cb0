package cmd

import (
	"lending/config"
	"lending/core"
	"lending/pkg/metrics"
	"lending/service/ledger"
	"lending/service/oracle"
	"lending/service/transfer"
	"lending/store/bank"
	"lending/store/session"
	transactionstore "lending/store/transaction"
	transferstore "lending/store/transfer"
	"lending/store/user"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	_ "github.com/lib/pq"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

// ---------------store-----------------------------------------

func provideSession(db *db.DB) core.Session {
	return session.New(db)
}

func provideBankStore(db *db.DB) core.BankStore {
	return bank.New(db)
}

func provideUserStore(db *db.DB) core.UserStore {
	return user.New(db)
}

func provideTransactionStore(db *db.DB) core.TransactionStore {
	return transactionstore.New(db)
}

func provideTransferStore(db *db.DB) core.TransferStore {
	return transferstore.New(db)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

// ------------------service------------------------------------

func provideOracle() core.Oracle {
	return oracle.New(cfg.OracleConfig())
}

func provideTransferClient() core.TransferService {
	return transfer.New(cfg.TransferConfig())
}

// provideTransferService the service operations hand their transfer batch to
func provideTransferService(transfers core.TransferStore) core.TransferService {
	client := provideTransferClient()
	if cfg.Transfer.Mode == config.TransferModeSync {
		return client
	}

	return transfer.NewOutbox(client, transfers)
}

func provideLedger(db *db.DB) core.LedgerService {
	return ledger.New(
		provideSession(db),
		provideBankStore(db),
		provideUserStore(db),
		provideTransactionStore(db),
		provideOracle(),
		provideTransferService(provideTransferStore(db)),
		cfg.LedgerConfig(),
		ledger.WithMetrics(metrics.Ledger()),
	)
}
