package core

import (
	"context"
	"time"
)

// User participant position
type User struct {
	ID               uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Owner            string `sql:"size:64;unique_index:idx_users_owner" json:"owner"`
	PrimaryAssetID   string `sql:"size:36" json:"primary_asset_id"`
	SecondaryAssetID string `sql:"size:36" json:"secondary_asset_id"`

	DepositedPrimary         uint64 `sql:"default:0" json:"deposited_primary"`
	DepositedPrimaryShares   uint64 `sql:"default:0" json:"deposited_primary_shares"`
	DepositedSecondary       uint64 `sql:"default:0" json:"deposited_secondary"`
	DepositedSecondaryShares uint64 `sql:"default:0" json:"deposited_secondary_shares"`

	BorrowedPrimary         uint64 `sql:"default:0" json:"borrowed_primary"`
	BorrowedPrimaryShares   uint64 `sql:"default:0" json:"borrowed_primary_shares"`
	BorrowedSecondary       uint64 `sql:"default:0" json:"borrowed_secondary"`
	BorrowedSecondaryShares uint64 `sql:"default:0" json:"borrowed_secondary_shares"`

	LastUpdatedDeposit int64     `sql:"default:0" json:"last_updated_deposit"`
	LastUpdatedBorrow  int64     `sql:"default:0" json:"last_updated_borrow"`
	Version            int64     `sql:"default:0" json:"version"`
	CreatedAt          time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// SideOf resolve which side of the position the asset belongs to,
// binding the secondary asset on first use
func (u *User) SideOf(assetID string) (Side, error) {
	switch {
	case assetID == "":
		return 0, ErrInvalidTokenAccount
	case assetID == u.PrimaryAssetID:
		return SidePrimary, nil
	case u.SecondaryAssetID == "":
		u.SecondaryAssetID = assetID
		return SideSecondary, nil
	case assetID == u.SecondaryAssetID:
		return SideSecondary, nil
	default:
		return 0, ErrInvalidTokenAccount
	}
}

// AssetOf asset id of the side, empty if the secondary is not bound yet
func (u *User) AssetOf(side Side) string {
	if side == SidePrimary {
		return u.PrimaryAssetID
	}

	return u.SecondaryAssetID
}

// Position fields of the side
func (u *User) Position(side Side) Position {
	if side == SidePrimary {
		return Position{
			Deposited:       &u.DepositedPrimary,
			DepositedShares: &u.DepositedPrimaryShares,
			Borrowed:        &u.BorrowedPrimary,
			BorrowedShares:  &u.BorrowedPrimaryShares,
		}
	}

	return Position{
		Deposited:       &u.DepositedSecondary,
		DepositedShares: &u.DepositedSecondaryShares,
		Borrowed:        &u.BorrowedSecondary,
		BorrowedShares:  &u.BorrowedSecondaryShares,
	}
}

// HasBorrows has any borrow shares
func (u *User) HasBorrows() bool {
	return u.BorrowedPrimaryShares > 0 || u.BorrowedSecondaryShares > 0
}

// UserStore user store interface
type UserStore interface {
	Create(ctx context.Context, user *User) error
	Find(ctx context.Context, owner string) (*User, error)
	List(ctx context.Context, from uint64, limit int) ([]*User, error)
	Update(ctx context.Context, user *User) error
}
