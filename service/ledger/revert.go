package ledger

import (
	"context"

	"lending/core"
	"lending/pkg/compound"

	"github.com/fox-one/pkg/uuid"
)

// Revert undoes the bookkeeping of a withdraw or borrow whose pool payout
// was rejected by the transfer service: the withdrawn amount is deposited
// back, the borrowed amount is repaid. Reverting twice returns the first
// revert.
func (s *ledgerService) Revert(ctx context.Context, batchID string) (*core.Transaction, error) {
	traceID := batchID
	if uuid.IsUUID(batchID) {
		traceID = uuid.Modify(batchID, "revert")
	}

	return s.run(ctx, core.ActionTypeRevert, traceID, func(ctx context.Context, op *operation) (*core.Transaction, error) {
		origin, err := s.transactionStore.FindByTraceID(ctx, batchID)
		if err != nil {
			return nil, err
		}

		if err := compound.Require(origin.ID > 0, "revert/unknown-batch", core.ErrInvalidAmount); err != nil {
			return nil, err
		}

		bank, err := op.bank(ctx, origin.AssetID)
		if err != nil {
			return nil, err
		}

		user, err := s.requireUser(ctx, origin.Owner)
		if err != nil {
			return nil, err
		}

		side, err := boundSide(user, origin.AssetID)
		if err != nil {
			return nil, err
		}

		pos := user.Position(side)
		amount := origin.Amount

		var shares uint64
		switch origin.Action {
		case core.ActionTypeWithdraw:
			if shares, err = mintDeposit(bank, pos, amount); err != nil {
				return nil, err
			}
			user.LastUpdatedDeposit = op.now.Unix()
		case core.ActionTypeBorrow:
			owed, err := compound.ToAmount(*pos.BorrowedShares, bank.TotalBorrowed, bank.TotalBorrowedShares)
			if err != nil {
				return nil, err
			}

			// part of the debt may be repaid already
			if amount > owed {
				amount = owed
			}

			if amount > 0 {
				if shares, err = burnBorrow(bank, pos, amount, owed); err != nil {
					return nil, err
				}
			}
			user.LastUpdatedBorrow = op.now.Unix()
		default:
			return nil, compound.Require(false, "revert/not-a-pool-payout", core.ErrInvalidAmount)
		}

		if err := op.commit(ctx, user); err != nil {
			return nil, err
		}

		extra := core.NewTransactionExtra()
		extra.Put(core.TransactionKeyRevertedTraceID, batchID)
		extra.Put(core.TransactionKeyRevertedAction, origin.Action.String())
		transaction := &core.Transaction{
			Owner:   origin.Owner,
			AssetID: origin.AssetID,
			Amount:  amount,
			Shares:  shares,
		}
		transaction.SetExtraData(extra)
		return transaction, nil
	})
}
