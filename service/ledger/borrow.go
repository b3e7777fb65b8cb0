package ledger

import (
	"context"

	"lending/core"
	"lending/pkg/compound"
	"lending/pkg/number"
)

// Borrow lends amount out of the pool against the deposits of the other side
func (s *ledgerService) Borrow(ctx context.Context, req *core.Request) (*core.Transaction, error) {
	return s.run(ctx, core.ActionTypeBorrow, req.TraceID, func(ctx context.Context, op *operation) (*core.Transaction, error) {
		if err := compound.Require(req.Amount > 0, "borrow/zero-amount", core.ErrInvalidAmount); err != nil {
			return nil, err
		}

		bank, err := op.bank(ctx, req.AssetID)
		if err != nil {
			return nil, err
		}

		user, err := s.requireUser(ctx, req.Owner)
		if err != nil {
			return nil, err
		}

		side, err := user.SideOf(req.AssetID)
		if err != nil {
			return nil, err
		}

		if err := compound.Require(req.Amount <= bank.Cash(), "borrow/insufficient-liquidity", core.ErrInsufficientLiquidity); err != nil {
			return nil, err
		}

		if err := compound.Require(user.AssetOf(side.Opposite()) != "", "borrow/no-collateral", core.ErrInsufficientCollateral); err != nil {
			return nil, err
		}

		h, err := op.health(ctx, user, side)
		if err != nil {
			return nil, err
		}

		quote, err := op.price(ctx, req.AssetID)
		if err != nil {
			return nil, err
		}

		if h.Borrowed == 0 && h.Collateral > 0 {
			collateralQuote, err := op.price(ctx, user.AssetOf(side.Opposite()))
			if err != nil {
				return nil, err
			}

			if h.CollateralValue, err = compound.Value(h.Collateral, collateralQuote); err != nil {
				return nil, err
			}
		}

		requested, err := compound.Value(req.Amount, quote)
		if err != nil {
			return nil, err
		}

		total, err := number.CheckedAdd(h.BorrowedValue, requested)
		if err != nil {
			return nil, err
		}

		borrowable, err := compound.Borrowable(h.CollateralValue, bank.LiquidationThreshold)
		if err != nil {
			return nil, err
		}

		if err := compound.Require(total <= borrowable, "borrow/insufficient-collateral", core.ErrInsufficientCollateral); err != nil {
			return nil, err
		}

		shares, err := mintBorrow(bank, user.Position(side), req.Amount)
		if err != nil {
			return nil, err
		}
		user.LastUpdatedBorrow = op.now.Unix()

		if err := op.commit(ctx, user); err != nil {
			return nil, err
		}

		op.transfer(req.TraceID, bank, req.Amount, core.TreasuryAddress(bank.AssetID), req.Owner, core.AuthorityPool, "borrow")

		extra := core.NewTransactionExtra()
		extra.Put(core.TransactionKeySide, side.String())
		extra.Put(core.TransactionKeyCollateralValue, h.CollateralValue)
		extra.Put(core.TransactionKeyBorrowedValue, total)
		transaction := &core.Transaction{
			Owner:   req.Owner,
			AssetID: req.AssetID,
			Amount:  req.Amount,
			Shares:  shares,
		}
		transaction.SetExtraData(extra)
		return transaction, nil
	})
}
