package ledger

import (
	"context"
	"time"

	"lending/core"
	"lending/pkg/compound"
	"lending/pkg/metrics"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/logger"
)

// Config ledger settings
type Config struct {
	// MaxPriceAge oldest oracle quote an operation may use
	MaxPriceAge time.Duration `json:"max_price_age"`
}

type ledgerService struct {
	session          core.Session
	bankStore        core.BankStore
	userStore        core.UserStore
	transactionStore core.TransactionStore
	oracle           core.Oracle
	transferService  core.TransferService
	config           Config
	clock            func() time.Time
	metrics          *metrics.LedgerMetrics
}

// Option ledger service option
type Option func(s *ledgerService)

// WithClock replaces the wall clock
func WithClock(clock func() time.Time) Option {
	return func(s *ledgerService) {
		s.clock = clock
	}
}

// WithMetrics records operation outcomes
func WithMetrics(m *metrics.LedgerMetrics) Option {
	return func(s *ledgerService) {
		s.metrics = m
	}
}

// New new ledger service
func New(
	session core.Session,
	bankStore core.BankStore,
	userStore core.UserStore,
	transactionStore core.TransactionStore,
	oracle core.Oracle,
	transferService core.TransferService,
	cfg Config,
	opts ...Option,
) core.LedgerService {
	s := &ledgerService{
		session:          session,
		bankStore:        bankStore,
		userStore:        userStore,
		transactionStore: transactionStore,
		oracle:           oracle,
		transferService:  transferService,
		config:           cfg,
		clock:            time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// run executes fn once per trace id inside one session transaction.
// The transfer batch collected by fn is issued last, after every record is
// written, so a failed transfer rolls the whole operation back.
func (s *ledgerService) run(
	ctx context.Context,
	action core.ActionType,
	traceID string,
	fn func(ctx context.Context, op *operation) (*core.Transaction, error),
) (*core.Transaction, error) {
	started := time.Now()
	log := logger.FromContext(ctx).WithField("event", action.String()).WithField("trace_id", traceID)
	ctx = logger.WithContext(ctx, log)

	var result *core.Transaction
	err := s.session.Tx(ctx, func(ctx context.Context) error {
		if err := compound.Require(govalidator.IsUUID(traceID), "ledger/invalid-trace-id", core.ErrInvalidAmount); err != nil {
			return err
		}

		existing, err := s.transactionStore.FindByTraceID(ctx, traceID)
		if err != nil {
			log.WithError(err).Errorln("transactions.FindByTraceID")
			return err
		}

		if existing.ID > 0 {
			log.Infoln("replay, transaction exists")
			result = existing
			return nil
		}

		op := s.newOperation()
		transaction, err := fn(ctx, op)
		if err != nil {
			return err
		}

		transaction.Action = action
		transaction.TraceID = traceID
		transaction.CreatedAt = op.now
		if err := s.transactionStore.Create(ctx, transaction); err != nil {
			log.WithError(err).Errorln("transactions.Create")
			return err
		}

		if err := s.transferService.Transfer(ctx, op.transfers...); err != nil {
			log.WithError(err).Errorln("transfers.Transfer")
			return err
		}

		result = transaction
		return nil
	})

	s.observe(action, err, started)
	if err != nil {
		log.WithError(err).Infoln("rejected")
		return nil, err
	}

	return result, nil
}

func (s *ledgerService) observe(action core.ActionType, err error, started time.Time) {
	outcome := "ok"
	if err != nil {
		outcome = compound.CodeOf(err).Name()
	}

	s.metrics.ObserveOperation(action.String(), outcome, started)
}

func (s *ledgerService) requireUser(ctx context.Context, owner string) (*core.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.userStore.Find(ctx, owner)
	if err != nil {
		log.WithError(err).Errorln("users.Find")
		return nil, err
	}

	if err := compound.Require(user.ID > 0, "ledger/user-not-found", core.ErrUserNotFound); err != nil {
		return nil, err
	}

	return user, nil
}

// boundSide side of an asset already part of the position, never binds a new one
func boundSide(user *core.User, assetID string) (core.Side, error) {
	switch {
	case assetID == "":
	case assetID == user.PrimaryAssetID:
		return core.SidePrimary, nil
	case assetID == user.SecondaryAssetID:
		return core.SideSecondary, nil
	}

	return 0, &compound.Error{Code: core.ErrInvalidTokenAccount, Msg: "ledger/asset-not-in-position"}
}
