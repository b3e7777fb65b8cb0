// Package memory keeps the ledger records in process, for tests and
// single node tooling. Every call runs against a copy of the records that
// replaces the committed copy only when the enclosing Tx succeeds.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
)

type stateKey struct{}

type state struct {
	banks        map[string]core.Bank
	users        map[string]core.User
	transactions map[string]core.Transaction
	transfers    []core.Transfer
	seq          uint64
}

func (st *state) clone() *state {
	c := &state{
		banks:        make(map[string]core.Bank, len(st.banks)),
		users:        make(map[string]core.User, len(st.users)),
		transactions: make(map[string]core.Transaction, len(st.transactions)),
		transfers:    append([]core.Transfer(nil), st.transfers...),
		seq:          st.seq,
	}

	for k, v := range st.banks {
		c.banks[k] = v
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.transactions {
		c.transactions[k] = v
	}

	return c
}

func (st *state) nextID() uint64 {
	st.seq++
	return st.seq
}

// Store in memory records
type Store struct {
	// serializes transactions
	txMu sync.Mutex

	mu        sync.RWMutex
	committed *state
}

// New empty store
func New() *Store {
	return &Store{
		committed: &state{
			banks:        map[string]core.Bank{},
			users:        map[string]core.User{},
			transactions: map[string]core.Transaction{},
		},
	}
}

// Tx runs fn on a private copy of the records and commits it when fn succeeds
func (s *Store) Tx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(stateKey{}).(*state); ok {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	working := s.committed.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, stateKey{}, working)); err != nil {
		return err
	}

	s.mu.Lock()
	s.committed = working
	s.mu.Unlock()
	return nil
}

func (s *Store) read(ctx context.Context, fn func(st *state)) {
	if st, ok := ctx.Value(stateKey{}).(*state); ok {
		fn(st)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.committed)
}

func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	return s.Tx(ctx, func(ctx context.Context) error {
		return fn(ctx.Value(stateKey{}).(*state))
	})
}

// Banks bank store view
func (s *Store) Banks() core.BankStore { return (*bankStore)(s) }

// Users user store view
func (s *Store) Users() core.UserStore { return (*userStore)(s) }

// Transactions transaction store view
func (s *Store) Transactions() core.TransactionStore { return (*transactionStore)(s) }

// Transfers transfer store view
func (s *Store) Transfers() core.TransferStore { return (*transferStore)(s) }

type bankStore Store

func (b *bankStore) Create(ctx context.Context, bank *core.Bank) error {
	return (*Store)(b).write(ctx, func(st *state) error {
		if existing, ok := st.banks[bank.AssetID]; ok {
			*bank = existing
			return nil
		}

		bank.ID = st.nextID()
		bank.CreatedAt = time.Now()
		bank.UpdatedAt = bank.CreatedAt
		st.banks[bank.AssetID] = *bank
		return nil
	})
}

func (b *bankStore) Find(ctx context.Context, assetID string) (*core.Bank, error) {
	bank := &core.Bank{}
	(*Store)(b).read(ctx, func(st *state) {
		if v, ok := st.banks[assetID]; ok {
			*bank = v
		}
	})

	return bank, nil
}

func (b *bankStore) All(ctx context.Context) ([]*core.Bank, error) {
	var banks []*core.Bank
	(*Store)(b).read(ctx, func(st *state) {
		for _, v := range st.banks {
			v := v
			banks = append(banks, &v)
		}
	})

	sort.Slice(banks, func(i, j int) bool { return banks[i].ID < banks[j].ID })
	return banks, nil
}

func (b *bankStore) Update(ctx context.Context, bank *core.Bank) error {
	return (*Store)(b).write(ctx, func(st *state) error {
		existing, ok := st.banks[bank.AssetID]
		if !ok || existing.Version != bank.Version {
			return db.ErrOptimisticLock
		}

		bank.Version++
		bank.UpdatedAt = time.Now()
		st.banks[bank.AssetID] = *bank
		return nil
	})
}

type userStore Store

func (u *userStore) Create(ctx context.Context, user *core.User) error {
	return (*Store)(u).write(ctx, func(st *state) error {
		if existing, ok := st.users[user.Owner]; ok {
			*user = existing
			return nil
		}

		user.ID = st.nextID()
		user.CreatedAt = time.Now()
		user.UpdatedAt = user.CreatedAt
		st.users[user.Owner] = *user
		return nil
	})
}

func (u *userStore) Find(ctx context.Context, owner string) (*core.User, error) {
	user := &core.User{}
	(*Store)(u).read(ctx, func(st *state) {
		if v, ok := st.users[owner]; ok {
			*user = v
		}
	})

	return user, nil
}

func (u *userStore) List(ctx context.Context, from uint64, limit int) ([]*core.User, error) {
	var users []*core.User
	(*Store)(u).read(ctx, func(st *state) {
		for _, v := range st.users {
			if v.ID > from {
				v := v
				users = append(users, &v)
			}
		}
	})

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}

	return users, nil
}

func (u *userStore) Update(ctx context.Context, user *core.User) error {
	return (*Store)(u).write(ctx, func(st *state) error {
		existing, ok := st.users[user.Owner]
		if !ok || existing.Version != user.Version {
			return db.ErrOptimisticLock
		}

		user.Version++
		user.UpdatedAt = time.Now()
		st.users[user.Owner] = *user
		return nil
	})
}

type transactionStore Store

func (t *transactionStore) Create(ctx context.Context, transaction *core.Transaction) error {
	return (*Store)(t).write(ctx, func(st *state) error {
		if existing, ok := st.transactions[transaction.TraceID]; ok {
			*transaction = existing
			return nil
		}

		transaction.ID = st.nextID()
		if transaction.CreatedAt.IsZero() {
			transaction.CreatedAt = time.Now()
		}
		st.transactions[transaction.TraceID] = *transaction
		return nil
	})
}

func (t *transactionStore) FindByTraceID(ctx context.Context, traceID string) (*core.Transaction, error) {
	transaction := &core.Transaction{}
	(*Store)(t).read(ctx, func(st *state) {
		if v, ok := st.transactions[traceID]; ok {
			*transaction = v
		}
	})

	return transaction, nil
}

func (t *transactionStore) ListByOwner(ctx context.Context, owner string, offset time.Time, limit int) ([]*core.Transaction, error) {
	if limit <= 0 {
		limit = 500
	}

	var transactions []*core.Transaction
	(*Store)(t).read(ctx, func(st *state) {
		for _, v := range st.transactions {
			if v.Owner == owner && !v.CreatedAt.Before(offset) {
				v := v
				transactions = append(transactions, &v)
			}
		}
	})

	sort.Slice(transactions, func(i, j int) bool {
		if transactions[i].CreatedAt.Equal(transactions[j].CreatedAt) {
			return transactions[i].ID < transactions[j].ID
		}
		return transactions[i].CreatedAt.Before(transactions[j].CreatedAt)
	})
	if len(transactions) > limit {
		transactions = transactions[:limit]
	}

	return transactions, nil
}

type transferStore Store

func (t *transferStore) Create(ctx context.Context, transfers ...*core.Transfer) error {
	return (*Store)(t).write(ctx, func(st *state) error {
	next:
		for _, transfer := range transfers {
			for _, existing := range st.transfers {
				if existing.TraceID == transfer.TraceID {
					*transfer = existing
					continue next
				}
			}

			transfer.ID = st.nextID()
			if transfer.CreatedAt.IsZero() {
				transfer.CreatedAt = time.Now()
			}
			st.transfers = append(st.transfers, *transfer)
		}

		return nil
	})
}

func (t *transferStore) Delete(ctx context.Context, ids ...uint64) error {
	drop := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	return (*Store)(t).write(ctx, func(st *state) error {
		kept := st.transfers[:0:0]
		for _, transfer := range st.transfers {
			if !drop[transfer.ID] {
				kept = append(kept, transfer)
			}
		}

		st.transfers = kept
		return nil
	})
}

func (t *transferStore) Top(ctx context.Context, limit int) ([]*core.Transfer, error) {
	var transfers []*core.Transfer
	(*Store)(t).read(ctx, func(st *state) {
		for _, v := range st.transfers {
			if limit > 0 && len(transfers) >= limit {
				break
			}

			v := v
			transfers = append(transfers, &v)
		}
	})

	return transfers, nil
}

func (t *transferStore) ListBatch(ctx context.Context, batchID string) ([]*core.Transfer, error) {
	var transfers []*core.Transfer
	(*Store)(t).read(ctx, func(st *state) {
		for _, v := range st.transfers {
			if v.BatchID == batchID {
				v := v
				transfers = append(transfers, &v)
			}
		}
	})

	return transfers, nil
}
