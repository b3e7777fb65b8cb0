package user

import (
	"context"

	"lending/core"
	"lending/store/session"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type userStore struct {
	db *db.DB
}

// New new user store
func New(db *db.DB) core.UserStore {
	return &userStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.User{})

		if err := tx.AutoMigrate(core.User{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *userStore) List(ctx context.Context, from uint64, limit int) ([]*core.User, error) {
	var users []*core.User
	if err := session.View(ctx, s.db).Where("id > ?", from).Order("id").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userStore) Create(ctx context.Context, user *core.User) error {
	return session.Update(ctx, s.db).Where("owner = ?", user.Owner).FirstOrCreate(user).Error
}

func (s *userStore) Find(ctx context.Context, owner string) (*core.User, error) {
	var user core.User

	err := session.View(ctx, s.db).Where("owner = ?", owner).First(&user).Error
	if store.IsErrNotFound(err) {
		return &core.User{}, nil
	}
	return &user, err
}

func (s *userStore) Update(ctx context.Context, user *core.User) error {
	version := user.Version
	user.Version++

	tx := session.Update(ctx, s.db).Model(core.User{}).
		Where("owner = ? and version = ?", user.Owner, version).
		Updates(map[string]interface{}{
			"secondary_asset_id":         user.SecondaryAssetID,
			"deposited_primary":          user.DepositedPrimary,
			"deposited_primary_shares":   user.DepositedPrimaryShares,
			"deposited_secondary":        user.DepositedSecondary,
			"deposited_secondary_shares": user.DepositedSecondaryShares,
			"borrowed_primary":           user.BorrowedPrimary,
			"borrowed_primary_shares":    user.BorrowedPrimaryShares,
			"borrowed_secondary":         user.BorrowedSecondary,
			"borrowed_secondary_shares":  user.BorrowedSecondaryShares,
			"last_updated_deposit":       user.LastUpdatedDeposit,
			"last_updated_borrow":        user.LastUpdatedBorrow,
			"version":                    user.Version,
			"updated_at":                 gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
