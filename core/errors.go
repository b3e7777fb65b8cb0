package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000

	// ErrMath division by zero, overflow or invalid time ordering
	ErrMath ErrorCode = 100100
	// ErrInsufficientFunds withdrawal exceeds owned value
	ErrInsufficientFunds ErrorCode = 100101
	// ErrInsufficientCollateral borrow exceeds borrowing power
	ErrInsufficientCollateral ErrorCode = 100102
	// ErrOverpayment repay exceeds owed value
	ErrOverpayment ErrorCode = 100103
	// ErrInvalidLiquidation health factor above threshold
	ErrInvalidLiquidation ErrorCode = 100104
	// ErrOracleStale price quote older than permitted
	ErrOracleStale ErrorCode = 100105
	// ErrInvalidTokenAccount asset is not part of the position
	ErrInvalidTokenAccount ErrorCode = 100106
	// ErrDepositRatioOverflow deposit ratio overflow
	ErrDepositRatioOverflow ErrorCode = 100107

	// ErrInvalidAmount zero amount, dust or out of range parameter
	ErrInvalidAmount ErrorCode = 100200
	// ErrInsufficientLiquidity pool cash below the requested amount
	ErrInsufficientLiquidity ErrorCode = 100201
	// ErrBankNotFound no bank for the asset
	ErrBankNotFound ErrorCode = 100202
	// ErrUserNotFound no user record for the owner
	ErrUserNotFound ErrorCode = 100203
)

var errorNames = map[ErrorCode]string{
	ErrUnknown:                "Unknown",
	ErrMath:                   "MathError",
	ErrInsufficientFunds:      "InsufficientFunds",
	ErrInsufficientCollateral: "InsufficientCollateral",
	ErrOverpayment:            "Overpayment",
	ErrInvalidLiquidation:     "InvalidLiquidation",
	ErrOracleStale:            "OracleStale",
	ErrInvalidTokenAccount:    "InvalidTokenAccount",
	ErrDepositRatioOverflow:   "DepositRatioOverflow",
	ErrInvalidAmount:          "InvalidAmount",
	ErrInsufficientLiquidity:  "InsufficientLiquidity",
	ErrBankNotFound:           "BankNotFound",
	ErrUserNotFound:           "UserNotFound",
}

// Name error kind name
func (e ErrorCode) Name() string {
	if name, ok := errorNames[e]; ok {
		return name
	}

	return errorNames[ErrUnknown]
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.Name()
}
