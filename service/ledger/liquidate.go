package ledger

import (
	"context"

	"lending/core"
	"lending/pkg/compound"
)

// Liquidate repays part of an unhealthy position's debt on behalf of the
// liquidator, who receives the matching collateral plus the bonus
func (s *ledgerService) Liquidate(ctx context.Context, req *core.LiquidateRequest) (*core.Transaction, error) {
	return s.run(ctx, core.ActionTypeLiquidate, req.TraceID, func(ctx context.Context, op *operation) (*core.Transaction, error) {
		user, err := s.requireUser(ctx, req.Owner)
		if err != nil {
			return nil, err
		}

		borrowedSide, err := boundSide(user, req.BorrowedAssetID)
		if err != nil {
			return nil, err
		}

		collateralSide, err := boundSide(user, req.CollateralAssetID)
		if err != nil {
			return nil, err
		}

		if err := compound.Require(collateralSide == borrowedSide.Opposite(), "liquidate/same-side", core.ErrInvalidTokenAccount); err != nil {
			return nil, err
		}

		h, err := op.health(ctx, user, borrowedSide)
		if err != nil {
			return nil, err
		}

		if err := compound.Require(h.Liquidatable, "liquidate/position-healthy", core.ErrInvalidLiquidation); err != nil {
			return nil, err
		}

		borrowedBank, err := op.bank(ctx, req.BorrowedAssetID)
		if err != nil {
			return nil, err
		}

		collateralBank, err := op.bank(ctx, req.CollateralAssetID)
		if err != nil {
			return nil, err
		}

		borrowedQuote, err := op.price(ctx, req.BorrowedAssetID)
		if err != nil {
			return nil, err
		}

		collateralQuote, err := op.price(ctx, req.CollateralAssetID)
		if err != nil {
			return nil, err
		}

		payout, err := compound.LiquidationPayout(compound.LiquidationInput{
			Owed:            h.Borrowed,
			CloseFactor:     borrowedBank.LiquidationCloseFactor,
			Bonus:           collateralBank.LiquidationBonus,
			BorrowedPrice:   borrowedQuote.Price,
			CollateralPrice: collateralQuote.Price,
			Collateral:      h.Collateral,
		})
		if err != nil {
			return nil, err
		}

		if err := compound.Require(payout.CollateralAmount <= collateralBank.Cash(), "liquidate/insufficient-liquidity", core.ErrInsufficientLiquidity); err != nil {
			return nil, err
		}

		borrowShares, err := burnBorrow(borrowedBank, user.Position(borrowedSide), payout.RepayAmount, h.Borrowed)
		if err != nil {
			return nil, err
		}

		collateralShares, err := burnDeposit(collateralBank, user.Position(collateralSide), payout.CollateralAmount)
		if err != nil {
			return nil, err
		}

		now := op.now.Unix()
		user.LastUpdatedBorrow = now
		user.LastUpdatedDeposit = now

		if err := op.commit(ctx, user); err != nil {
			return nil, err
		}

		op.transfer(req.TraceID, borrowedBank, payout.RepayAmount, req.Liquidator, core.TreasuryAddress(borrowedBank.AssetID), core.AuthoritySigner, "liquidate")
		op.transfer(req.TraceID, collateralBank, payout.CollateralAmount, core.TreasuryAddress(collateralBank.AssetID), req.Liquidator, core.AuthorityPool, "liquidate")

		extra := core.NewTransactionExtra()
		extra.Put(core.TransactionKeyLiquidator, req.Liquidator)
		extra.Put(core.TransactionKeyCollateralAssetID, req.CollateralAssetID)
		extra.Put(core.TransactionKeyCollateralAmount, payout.CollateralAmount)
		extra.Put(core.TransactionKeyCollateralShares, collateralShares)
		extra.Put(core.TransactionKeyCollateralValue, h.CollateralValue)
		extra.Put(core.TransactionKeyBorrowedValue, h.BorrowedValue)
		if h.HealthFactor != nil {
			extra.Put(core.TransactionKeyHealthFactor, h.HealthFactor.String())
		}

		transaction := &core.Transaction{
			Owner:   req.Owner,
			AssetID: req.BorrowedAssetID,
			Amount:  payout.RepayAmount,
			Shares:  borrowShares,
		}
		transaction.SetExtraData(extra)
		return transaction, nil
	})
}
