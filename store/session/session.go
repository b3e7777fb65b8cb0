package session

import (
	"context"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type txKey struct{}

type session struct {
	db *db.DB
}

// New gorm backed session, the open transaction travels in the context
func New(db *db.DB) core.Session {
	return &session{db: db}
}

func (s *session) Tx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFrom(ctx); ok {
		return fn(ctx)
	}

	return s.db.Tx(func(tx *db.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func txFrom(ctx context.Context) (*db.DB, bool) {
	tx, ok := ctx.Value(txKey{}).(*db.DB)
	return tx, ok
}

// Update write handle, the context transaction if any
func Update(ctx context.Context, d *db.DB) *gorm.DB {
	if tx, ok := txFrom(ctx); ok {
		return tx.Update()
	}

	return d.Update()
}

// View read handle; inside a transaction reads go through it as well
func View(ctx context.Context, d *db.DB) *gorm.DB {
	if tx, ok := txFrom(ctx); ok {
		return tx.Update()
	}

	return d.View()
}
