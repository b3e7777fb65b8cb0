package bank

import (
	"context"

	"lending/core"
	"lending/store/session"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type bankStore struct {
	db *db.DB
}

// New new bank store
func New(db *db.DB) core.BankStore {
	return &bankStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Bank{})
		if err := tx.AutoMigrate(core.Bank{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *bankStore) Create(ctx context.Context, bank *core.Bank) error {
	return session.Update(ctx, s.db).Where("asset_id=?", bank.AssetID).FirstOrCreate(bank).Error
}

func (s *bankStore) Find(ctx context.Context, assetID string) (*core.Bank, error) {
	var bank core.Bank
	if err := session.View(ctx, s.db).Where("asset_id=?", assetID).First(&bank).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.Bank{}, nil
		}

		return nil, err
	}

	return &bank, nil
}

func (s *bankStore) All(ctx context.Context) ([]*core.Bank, error) {
	var banks []*core.Bank
	if err := session.View(ctx, s.db).Order("id").Find(&banks).Error; err != nil {
		return nil, err
	}

	return banks, nil
}

func (s *bankStore) Update(ctx context.Context, bank *core.Bank) error {
	version := bank.Version
	bank.Version++

	tx := session.Update(ctx, s.db).Model(core.Bank{}).
		Where("asset_id=? and version=?", bank.AssetID, version).
		Updates(map[string]interface{}{
			"total_deposited":        bank.TotalDeposited,
			"total_deposited_shares": bank.TotalDepositedShares,
			"total_borrowed":         bank.TotalBorrowed,
			"total_borrowed_shares":  bank.TotalBorrowedShares,
			"last_updated":           bank.LastUpdated,
			"version":                bank.Version,
			"updated_at":             gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
