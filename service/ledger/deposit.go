package ledger

import (
	"context"

	"lending/core"
	"lending/pkg/compound"
)

// Deposit moves amount from the owner into the pool and mints deposit shares
func (s *ledgerService) Deposit(ctx context.Context, req *core.Request) (*core.Transaction, error) {
	return s.run(ctx, core.ActionTypeDeposit, req.TraceID, func(ctx context.Context, op *operation) (*core.Transaction, error) {
		if err := compound.Require(req.Amount > 0, "deposit/zero-amount", core.ErrInvalidAmount); err != nil {
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

		shares, err := mintDeposit(bank, user.Position(side), req.Amount)
		if err != nil {
			return nil, err
		}
		user.LastUpdatedDeposit = op.now.Unix()

		if err := op.commit(ctx, user); err != nil {
			return nil, err
		}

		op.transfer(req.TraceID, bank, req.Amount, req.Owner, core.TreasuryAddress(bank.AssetID), core.AuthoritySigner, "deposit")

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
