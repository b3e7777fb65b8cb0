package ledger

import (
	"context"

	"lending/core"
)

// Health accrued view of the owner's position; nothing is written
func (s *ledgerService) Health(ctx context.Context, owner string) (*core.Health, error) {
	user, err := s.requireUser(ctx, owner)
	if err != nil {
		return nil, err
	}

	op := s.newOperation()
	primary, err := op.health(ctx, user, core.SidePrimary)
	if err != nil {
		return nil, err
	}

	health := &core.Health{
		Owner:        owner,
		Primary:      *primary,
		Liquidatable: primary.Liquidatable,
	}

	if user.SecondaryAssetID != "" {
		secondary, err := op.health(ctx, user, core.SideSecondary)
		if err != nil {
			return nil, err
		}

		health.Secondary = secondary
		health.Liquidatable = health.Liquidatable || secondary.Liquidatable
	}

	return health, nil
}
