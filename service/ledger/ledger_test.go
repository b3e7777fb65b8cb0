package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lending/core"
	"lending/pkg/number"
	"lending/store/memory"

	"github.com/fox-one/pkg/uuid"
	"github.com/stretchr/testify/require"
)

const (
	usdc = "usdc"
	sol  = "sol"
	eth  = "eth"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeOracle struct {
	clock  *clock
	prices map[string]uint64
	// age of every quote returned
	age time.Duration
}

func (o *fakeOracle) Quote(_ context.Context, assetID string, _ time.Duration) (*core.PriceQuote, error) {
	price, ok := o.prices[assetID]
	if !ok {
		return nil, errors.New("no price")
	}

	return &core.PriceQuote{AssetID: assetID, Price: price, ObservedAt: o.clock.Now().Add(-o.age)}, nil
}

type fakeTransfers struct {
	batches [][]*core.Transfer
	err     error
}

func (t *fakeTransfers) Transfer(_ context.Context, transfers ...*core.Transfer) error {
	if t.err != nil {
		return t.err
	}

	t.batches = append(t.batches, transfers)
	return nil
}

func (t *fakeTransfers) last() []*core.Transfer {
	if len(t.batches) == 0 {
		return nil
	}
	return t.batches[len(t.batches)-1]
}

type fixture struct {
	ctx       context.Context
	store     *memory.Store
	clock     *clock
	oracle    *fakeOracle
	transfers *fakeTransfers
	ledger    core.LedgerService
}

func wad(v string) uint64 {
	w, err := number.ToWad(number.Decimal(v))
	if err != nil {
		panic(err)
	}
	return w
}

func newFixture(t *testing.T, threshold string) *fixture {
	t.Helper()

	c := &clock{now: time.Unix(1_700_000_000, 0)}
	f := &fixture{
		ctx:       context.Background(),
		store:     memory.New(),
		clock:     c,
		oracle:    &fakeOracle{clock: c, prices: map[string]uint64{usdc: number.PriceScale, sol: number.PriceScale, eth: number.PriceScale}},
		transfers: &fakeTransfers{},
	}

	f.ledger = New(
		f.store,
		f.store.Banks(),
		f.store.Users(),
		f.store.Transactions(),
		f.oracle,
		f.transfers,
		Config{MaxPriceAge: time.Minute},
		WithClock(c.Now),
	)

	for _, asset := range []string{usdc, sol, eth} {
		_, err := f.ledger.InitBank(f.ctx, &core.BankParams{
			AssetID:                asset,
			Decimals:               8,
			LiquidationThreshold:   wad(threshold),
			MaxLTV:                 wad(threshold),
			LiquidationBonus:       wad("0.1"),
			LiquidationCloseFactor: wad("0.5"),
		})
		require.NoError(t, err)
	}

	return f
}

func (f *fixture) user(t *testing.T, owner, primary string) {
	t.Helper()
	_, err := f.ledger.InitUser(f.ctx, owner, primary)
	require.NoError(t, err)
}

func (f *fixture) do(t *testing.T, fn func(context.Context, *core.Request) (*core.Transaction, error), owner, asset string, amount uint64) (*core.Transaction, error) {
	t.Helper()
	return fn(f.ctx, &core.Request{TraceID: uuid.New(), Owner: owner, AssetID: asset, Amount: amount})
}

func (f *fixture) mustDo(t *testing.T, fn func(context.Context, *core.Request) (*core.Transaction, error), owner, asset string, amount uint64) *core.Transaction {
	t.Helper()
	tx, err := f.do(t, fn, owner, asset, amount)
	require.NoError(t, err)
	return tx
}

func (f *fixture) bank(t *testing.T, asset string) *core.Bank {
	t.Helper()
	bank, err := f.store.Banks().Find(f.ctx, asset)
	require.NoError(t, err)
	return bank
}

func (f *fixture) findUser(t *testing.T, owner string) *core.User {
	t.Helper()
	user, err := f.store.Users().Find(f.ctx, owner)
	require.NoError(t, err)
	return user
}
