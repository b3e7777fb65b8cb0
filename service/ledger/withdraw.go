package ledger

import (
	"context"

	"lending/core"
	"lending/pkg/compound"
)

// Withdraw burns deposit shares worth amount and pays it out of the pool.
// Deposits backing debt on the other side must keep that debt covered.
func (s *ledgerService) Withdraw(ctx context.Context, req *core.Request) (*core.Transaction, error) {
	return s.run(ctx, core.ActionTypeWithdraw, req.TraceID, func(ctx context.Context, op *operation) (*core.Transaction, error) {
		if err := compound.Require(req.Amount > 0, "withdraw/zero-amount", core.ErrInvalidAmount); err != nil {
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

		side, err := boundSide(user, req.AssetID)
		if err != nil {
			return nil, err
		}

		pos := user.Position(side)
		owned, err := compound.ToAmount(*pos.DepositedShares, bank.TotalDeposited, bank.TotalDepositedShares)
		if err != nil {
			return nil, err
		}

		if err := compound.Require(req.Amount <= owned, "withdraw/insufficient-funds", core.ErrInsufficientFunds); err != nil {
			return nil, err
		}

		if err := compound.Require(req.Amount <= bank.Cash(), "withdraw/insufficient-liquidity", core.ErrInsufficientLiquidity); err != nil {
			return nil, err
		}

		shares, err := burnDeposit(bank, pos, req.Amount)
		if err != nil {
			return nil, err
		}
		user.LastUpdatedDeposit = op.now.Unix()

		if _, err := op.requireHealthy(ctx, user, side.Opposite(), "withdraw/insufficient-collateral"); err != nil {
			return nil, err
		}

		if err := op.commit(ctx, user); err != nil {
			return nil, err
		}

		op.transfer(req.TraceID, bank, req.Amount, core.TreasuryAddress(bank.AssetID), req.Owner, core.AuthorityPool, "withdraw")

		extra := core.NewTransactionExtra()
		extra.Put(core.TransactionKeySide, side.String())
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
