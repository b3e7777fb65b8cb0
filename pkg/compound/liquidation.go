package compound

import (
	"lending/core"
	"lending/pkg/number"
)

// LiquidationInput amounts in base units, prices scaled by PriceScale, fractions in wad
type LiquidationInput struct {
	Owed            uint64
	CloseFactor     uint64
	Bonus           uint64
	BorrowedPrice   uint64
	CollateralPrice uint64
	// collateral the distressed position holds
	Collateral uint64
}

// Payout a liquidation split
type Payout struct {
	RepayAmount      uint64 `json:"repay_amount"`
	CollateralAmount uint64 `json:"collateral_amount"`
}

// LiquidationPayout repay = owed * close factor; the liquidator receives
// collateral worth repay * (1 + bonus). The seizure is capped at the
// position's collateral and the repay amount re-derived from the cap.
func LiquidationPayout(in LiquidationInput) (*Payout, error) {
	if err := Require(in.BorrowedPrice > 0 && in.CollateralPrice > 0, "liquidation/zero-price", core.ErrOracleStale); err != nil {
		return nil, err
	}

	repay, err := number.MulDiv(in.Owed, in.CloseFactor, number.Wad)
	if err != nil {
		return nil, err
	}

	if err := Require(repay > 0, "liquidation/nothing-to-repay", core.ErrInvalidLiquidation); err != nil {
		return nil, err
	}

	multiplier, err := number.CheckedAdd(number.Wad, in.Bonus)
	if err != nil {
		return nil, err
	}

	seize, err := number.Fraction(
		[]uint64{repay, in.BorrowedPrice, multiplier},
		[]uint64{number.Wad, in.CollateralPrice},
		false,
	)
	if err != nil {
		return nil, err
	}

	if seize > in.Collateral {
		seize = in.Collateral
		capped, err := number.Fraction(
			[]uint64{seize, number.Wad, in.CollateralPrice},
			[]uint64{in.BorrowedPrice, multiplier},
			true,
		)
		if err != nil {
			return nil, err
		}

		if capped < repay {
			repay = capped
		}
	}

	if err := Require(seize > 0, "liquidation/nothing-to-seize", core.ErrInvalidLiquidation); err != nil {
		return nil, err
	}

	return &Payout{RepayAmount: repay, CollateralAmount: seize}, nil
}
