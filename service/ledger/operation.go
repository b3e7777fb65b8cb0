package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"lending/core"
	"lending/pkg/compound"
	"lending/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/uuid"
)

// operation state of one ledger operation: banks accrued to now, quotes
// checked against now, and the transfers to issue on success
type operation struct {
	*ledgerService
	now       time.Time
	banks     map[string]*core.Bank
	quotes    map[string]*core.PriceQuote
	transfers []*core.Transfer
}

func (s *ledgerService) newOperation() *operation {
	return &operation{
		ledgerService: s,
		now:           s.clock(),
		banks:         map[string]*core.Bank{},
		quotes:        map[string]*core.PriceQuote{},
	}
}

// bank loads the bank of assetID and accrues it to now
func (op *operation) bank(ctx context.Context, assetID string) (*core.Bank, error) {
	if bank, ok := op.banks[assetID]; ok {
		return bank, nil
	}

	log := logger.FromContext(ctx)

	bank, err := op.bankStore.Find(ctx, assetID)
	if err != nil {
		log.WithError(err).Errorln("banks.Find")
		return nil, err
	}

	if err := compound.Require(bank.ID > 0, "ledger/bank-not-found", core.ErrBankNotFound); err != nil {
		return nil, err
	}

	if err := compound.AccrueBank(bank, op.now.Unix()); err != nil {
		log.WithError(err).Errorln("AccrueBank")
		return nil, err
	}

	op.banks[assetID] = bank
	return bank, nil
}

func (op *operation) price(ctx context.Context, assetID string) (*core.PriceQuote, error) {
	if quote, ok := op.quotes[assetID]; ok {
		return quote, nil
	}

	quote, err := op.oracle.Quote(ctx, assetID, op.config.MaxPriceAge)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("oracle.Quote")
		return nil, err
	}

	if err := compound.CheckQuote(quote, assetID, op.now, op.config.MaxPriceAge); err != nil {
		return nil, err
	}

	op.quotes[assetID] = quote
	return quote, nil
}

// balances accrued deposited and borrowed amounts of the user's side
func (op *operation) balances(ctx context.Context, user *core.User, side core.Side) (deposited, borrowed uint64, err error) {
	assetID := user.AssetOf(side)
	if assetID == "" {
		return 0, 0, nil
	}

	bank, err := op.bank(ctx, assetID)
	if err != nil {
		return 0, 0, err
	}

	pos := user.Position(side)
	if deposited, err = compound.ToAmount(*pos.DepositedShares, bank.TotalDeposited, bank.TotalDepositedShares); err != nil {
		return 0, 0, err
	}

	if borrowed, err = compound.ToAmount(*pos.BorrowedShares, bank.TotalBorrowed, bank.TotalBorrowedShares); err != nil {
		return 0, 0, err
	}

	return deposited, borrowed, nil
}

// health values the debt of side against the deposits of the opposite side,
// using the borrowed bank's liquidation threshold
func (op *operation) health(ctx context.Context, user *core.User, side core.Side) (*core.SideHealth, error) {
	h := &core.SideHealth{
		Side:    side,
		AssetID: user.AssetOf(side),
	}

	var err error
	if h.Deposited, h.Borrowed, err = op.balances(ctx, user, side); err != nil {
		return nil, err
	}

	if h.Collateral, _, err = op.balances(ctx, user, side.Opposite()); err != nil {
		return nil, err
	}

	if h.Borrowed == 0 {
		return h, nil
	}

	bank, err := op.bank(ctx, h.AssetID)
	if err != nil {
		return nil, err
	}

	borrowedQuote, err := op.price(ctx, h.AssetID)
	if err != nil {
		return nil, err
	}

	if h.BorrowedValue, err = compound.Value(h.Borrowed, borrowedQuote); err != nil {
		return nil, err
	}

	if h.Collateral > 0 {
		collateralQuote, err := op.price(ctx, user.AssetOf(side.Opposite()))
		if err != nil {
			return nil, err
		}

		if h.CollateralValue, err = compound.Value(h.Collateral, collateralQuote); err != nil {
			return nil, err
		}
	}

	hf, _ := compound.HealthFactor(h.CollateralValue, bank.LiquidationThreshold, h.BorrowedValue)
	h.HealthFactor = &hf
	h.Liquidatable = compound.Liquidatable(h.CollateralValue, bank.LiquidationThreshold, h.BorrowedValue)
	return h, nil
}

// requireHealthy fails unless the debt of side stays within the borrowing
// power of the opposite side's deposits
func (op *operation) requireHealthy(ctx context.Context, user *core.User, side core.Side, msg string) (*core.SideHealth, error) {
	h, err := op.health(ctx, user, side)
	if err != nil {
		return nil, err
	}

	if h.Borrowed == 0 {
		return h, nil
	}

	bank, err := op.bank(ctx, h.AssetID)
	if err != nil {
		return nil, err
	}

	borrowable, err := compound.Borrowable(h.CollateralValue, bank.LiquidationThreshold)
	if err != nil {
		return nil, err
	}

	if err := compound.Require(h.BorrowedValue <= borrowable, msg, core.ErrInsufficientCollateral); err != nil {
		return nil, err
	}

	return h, nil
}

// mintDeposit credits amount to the deposit side of bank and pos
func mintDeposit(bank *core.Bank, pos core.Position, amount uint64) (uint64, error) {
	shares, err := compound.Mint(&bank.TotalDeposited, &bank.TotalDepositedShares, amount)
	if err != nil {
		return 0, err
	}

	if *pos.DepositedShares, err = number.CheckedAdd(*pos.DepositedShares, shares); err != nil {
		return 0, err
	}

	*pos.Deposited, err = compound.ToAmount(*pos.DepositedShares, bank.TotalDeposited, bank.TotalDepositedShares)
	return shares, err
}

// mintBorrow debits amount to the borrow side of bank and pos
func mintBorrow(bank *core.Bank, pos core.Position, amount uint64) (uint64, error) {
	shares, err := compound.Mint(&bank.TotalBorrowed, &bank.TotalBorrowedShares, amount)
	if err != nil {
		return 0, err
	}

	if *pos.BorrowedShares, err = number.CheckedAdd(*pos.BorrowedShares, shares); err != nil {
		return 0, err
	}

	*pos.Borrowed, err = compound.ToAmount(*pos.BorrowedShares, bank.TotalBorrowed, bank.TotalBorrowedShares)
	return shares, err
}

// burnDeposit removes amount from the deposit side, rounding the burned
// shares up. Shares left worth nothing are burned too.
func burnDeposit(bank *core.Bank, pos core.Position, amount uint64) (uint64, error) {
	shares, err := compound.ToSharesUp(amount, bank.TotalDeposited, bank.TotalDepositedShares)
	if err != nil {
		return 0, err
	}

	if shares > *pos.DepositedShares {
		shares = *pos.DepositedShares
	}

	if err := compound.Burn(&bank.TotalDeposited, &bank.TotalDepositedShares, shares, amount); err != nil {
		return 0, err
	}
	*pos.DepositedShares -= shares

	dust, err := sweep(&bank.TotalDeposited, &bank.TotalDepositedShares, pos.DepositedShares, pos.Deposited)
	return shares + dust, err
}

// burnBorrow removes amount from the borrow side, rounding the burned shares
// down; repaying all of owed burns every share
func burnBorrow(bank *core.Bank, pos core.Position, amount, owed uint64) (uint64, error) {
	shares := *pos.BorrowedShares
	if amount < owed {
		var err error
		if shares, err = compound.ToShares(amount, bank.TotalBorrowed, bank.TotalBorrowedShares); err != nil {
			return 0, err
		}

		if err := compound.Require(shares > 0, "repay/dust", core.ErrInvalidAmount); err != nil {
			return 0, err
		}
	}

	if err := compound.Burn(&bank.TotalBorrowed, &bank.TotalBorrowedShares, shares, amount); err != nil {
		return 0, err
	}
	*pos.BorrowedShares -= shares

	dust, err := sweep(&bank.TotalBorrowed, &bank.TotalBorrowedShares, pos.BorrowedShares, pos.Borrowed)
	return shares + dust, err
}

// sweep refreshes the user amount from its shares, burning shares worth zero
func sweep(total, totalShares, shares, amount *uint64) (uint64, error) {
	value, err := compound.ToAmount(*shares, *total, *totalShares)
	if err != nil {
		return 0, err
	}

	var dust uint64
	if value == 0 && *shares > 0 {
		dust = *shares
		if err := compound.Burn(total, totalShares, dust, 0); err != nil {
			return 0, err
		}
		*shares = 0
	}

	*amount = value
	return dust, nil
}

// transfer queues a transfer of the operation's batch
func (op *operation) transfer(traceID string, bank *core.Bank, amount uint64, from, to string, authority core.Authority, memo string) {
	op.transfers = append(op.transfers, &core.Transfer{
		TraceID:   uuid.Modify(traceID, fmt.Sprintf("transfer:%d", len(op.transfers))),
		BatchID:   traceID,
		AssetID:   bank.AssetID,
		Decimals:  bank.Decimals,
		Amount:    amount,
		From:      from,
		To:        to,
		Authority: authority,
		Memo:      memo,
		CreatedAt: op.now,
	})
}

// commit writes every touched bank and the given users
func (op *operation) commit(ctx context.Context, users ...*core.User) error {
	log := logger.FromContext(ctx)

	assets := make([]string, 0, len(op.banks))
	for assetID := range op.banks {
		assets = append(assets, assetID)
	}
	sort.Strings(assets)

	for _, assetID := range assets {
		if err := op.bankStore.Update(ctx, op.banks[assetID]); err != nil {
			log.WithError(err).Errorln("banks.Update")
			return err
		}
	}

	for _, user := range users {
		if err := op.userStore.Update(ctx, user); err != nil {
			log.WithError(err).Errorln("users.Update")
			return err
		}
	}

	return nil
}
