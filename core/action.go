package core

// ActionType ledger operation
type ActionType int

const (
	_ ActionType = iota
	// ActionTypeInitBank init bank
	ActionTypeInitBank
	// ActionTypeInitUser init user
	ActionTypeInitUser
	// ActionTypeDeposit deposit
	ActionTypeDeposit
	// ActionTypeWithdraw withdraw
	ActionTypeWithdraw
	// ActionTypeBorrow borrow
	ActionTypeBorrow
	// ActionTypeRepay repay
	ActionTypeRepay
	// ActionTypeLiquidate liquidate
	ActionTypeLiquidate
	// ActionTypeRevert revert of a rejected pool payout
	ActionTypeRevert
)

func (a ActionType) String() string {
	switch a {
	case ActionTypeInitBank:
		return "init_bank"
	case ActionTypeInitUser:
		return "init_user"
	case ActionTypeDeposit:
		return "deposit"
	case ActionTypeWithdraw:
		return "withdraw"
	case ActionTypeBorrow:
		return "borrow"
	case ActionTypeRepay:
		return "repay"
	case ActionTypeLiquidate:
		return "liquidate"
	case ActionTypeRevert:
		return "revert"
	default:
		return "unknown"
	}
}
