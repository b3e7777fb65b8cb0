package ledger

import (
	"context"
	"errors"

	"lending/core"
	"lending/pkg/compound"
	"lending/pkg/number"

	"github.com/fox-one/pkg/logger"
)

func validateBankParams(params *core.BankParams) error {
	if err := compound.Require(params.AssetID != "", "init-bank/missing-asset", core.ErrInvalidAmount); err != nil {
		return err
	}

	if err := compound.Require(params.LiquidationThreshold > 0 && params.LiquidationThreshold <= number.Wad, "init-bank/liquidation-threshold", core.ErrInvalidAmount); err != nil {
		return err
	}

	if err := compound.Require(params.MaxLTV <= params.LiquidationThreshold, "init-bank/max-ltv", core.ErrInvalidAmount); err != nil {
		return err
	}

	if err := compound.Require(params.LiquidationCloseFactor > 0 && params.LiquidationCloseFactor <= number.Wad, "init-bank/close-factor", core.ErrInvalidAmount); err != nil {
		return err
	}

	return compound.Require(params.LiquidationBonus <= number.Wad, "init-bank/liquidation-bonus", core.ErrInvalidAmount)
}

// InitBank creates the bank of an asset; an existing bank is returned unchanged
func (s *ledgerService) InitBank(ctx context.Context, params *core.BankParams) (*core.Bank, error) {
	log := logger.FromContext(ctx).WithField("event", core.ActionTypeInitBank.String())
	ctx = logger.WithContext(ctx, log)

	if err := validateBankParams(params); err != nil {
		return nil, err
	}

	bank := &core.Bank{
		AssetID:                params.AssetID,
		Decimals:               params.Decimals,
		InterestRate:           params.InterestRate,
		LiquidationThreshold:   params.LiquidationThreshold,
		MaxLTV:                 params.MaxLTV,
		LiquidationBonus:       params.LiquidationBonus,
		LiquidationCloseFactor: params.LiquidationCloseFactor,
		LastUpdated:            s.clock().Unix(),
	}

	if err := s.session.Tx(ctx, func(ctx context.Context) error {
		return s.bankStore.Create(ctx, bank)
	}); err != nil {
		log.WithError(err).Errorln("banks.Create")
		return nil, err
	}

	return bank, nil
}

// InitUser creates the position of owner with its primary asset
func (s *ledgerService) InitUser(ctx context.Context, owner, primaryAssetID string) (*core.User, error) {
	log := logger.FromContext(ctx).WithField("event", core.ActionTypeInitUser.String())
	ctx = logger.WithContext(ctx, log)

	if err := compound.Require(owner != "", "init-user/missing-owner", core.ErrInvalidAmount); err != nil {
		return nil, err
	}

	user := &core.User{
		Owner:          owner,
		PrimaryAssetID: primaryAssetID,
	}

	err := s.session.Tx(ctx, func(ctx context.Context) error {
		bank, err := s.bankStore.Find(ctx, primaryAssetID)
		if err != nil {
			log.WithError(err).Errorln("banks.Find")
			return err
		}

		if err := compound.Require(bank.ID > 0, "init-user/bank-not-found", core.ErrBankNotFound); err != nil {
			return err
		}

		return s.userStore.Create(ctx, user)
	})
	if err != nil {
		if !errors.Is(err, core.ErrBankNotFound) {
			log.WithError(err).Errorln("users.Create")
		}
		return nil, err
	}

	return user, nil
}
