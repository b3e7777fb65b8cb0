package transfer

import (
	"context"
	"errors"

	"lending/core"
	"lending/store/session"

	"github.com/fox-one/pkg/store/db"
)

type transferStore struct {
	db *db.DB
}

// New new transfer store
func New(db *db.DB) core.TransferStore {
	return &transferStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transfer{})
		if err := tx.AutoMigrate(core.Transfer{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *transferStore) Create(ctx context.Context, transfers ...*core.Transfer) error {
	tx := session.Update(ctx, s.db)
	for _, transfer := range transfers {
		if err := tx.Where("trace_id=?", transfer.TraceID).FirstOrCreate(transfer).Error; err != nil {
			return err
		}
	}

	return nil
}

func (s *transferStore) Delete(ctx context.Context, ids ...uint64) error {
	if len(ids) == 0 {
		return nil
	}

	return session.Update(ctx, s.db).Where("id in (?)", ids).Delete(core.Transfer{}).Error
}

func (s *transferStore) Top(ctx context.Context, limit int) ([]*core.Transfer, error) {
	if limit <= 0 {
		return nil, errors.New("invalid limit")
	}

	var transfers []*core.Transfer
	if e := session.View(ctx, s.db).Limit(limit).Order("id ASC").Find(&transfers).Error; e != nil {
		return nil, e
	}

	return transfers, nil
}

func (s *transferStore) ListBatch(ctx context.Context, batchID string) ([]*core.Transfer, error) {
	var transfers []*core.Transfer
	if e := session.View(ctx, s.db).Where("batch_id=?", batchID).Order("id ASC").Find(&transfers).Error; e != nil {
		return nil, e
	}

	return transfers, nil
}
