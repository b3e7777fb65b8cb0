package core

// Side half of a user position
type Side int

const (
	// SidePrimary the designated primary asset
	SidePrimary Side = iota + 1
	// SideSecondary any other asset, bound on first use
	SideSecondary
)

// Opposite the collateral side for an operation on s
func (s Side) Opposite() Side {
	if s == SidePrimary {
		return SideSecondary
	}

	return SidePrimary
}

func (s Side) String() string {
	switch s {
	case SidePrimary:
		return "primary"
	case SideSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// Position per side balances of a user
type Position struct {
	Deposited       *uint64
	DepositedShares *uint64
	Borrowed        *uint64
	BorrowedShares  *uint64
}
