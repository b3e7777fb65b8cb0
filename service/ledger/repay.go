package ledger

import (
	"context"

	"lending/core"
	"lending/pkg/compound"
)

// Repay returns amount of the owner's debt to the pool, at most what is owed
func (s *ledgerService) Repay(ctx context.Context, req *core.Request) (*core.Transaction, error) {
	return s.run(ctx, core.ActionTypeRepay, req.TraceID, func(ctx context.Context, op *operation) (*core.Transaction, error) {
		if err := compound.Require(req.Amount > 0, "repay/zero-amount", core.ErrInvalidAmount); err != nil {
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
		owed, err := compound.ToAmount(*pos.BorrowedShares, bank.TotalBorrowed, bank.TotalBorrowedShares)
		if err != nil {
			return nil, err
		}

		if err := compound.Require(req.Amount <= owed, "repay/overpayment", core.ErrOverpayment); err != nil {
			return nil, err
		}

		shares, err := burnBorrow(bank, pos, req.Amount, owed)
		if err != nil {
			return nil, err
		}
		user.LastUpdatedBorrow = op.now.Unix()

		if err := op.commit(ctx, user); err != nil {
			return nil, err
		}

		op.transfer(req.TraceID, bank, req.Amount, req.Owner, core.TreasuryAddress(bank.AssetID), core.AuthoritySigner, "repay")

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
