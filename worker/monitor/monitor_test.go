package monitor

import (
	"context"
	"testing"

	"lending/core"
	"lending/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	core.LedgerService
	unhealthy map[string]bool
	asked     []string
}

func (l *fakeLedger) Health(_ context.Context, owner string) (*core.Health, error) {
	l.asked = append(l.asked, owner)
	return &core.Health{Owner: owner, Liquidatable: l.unhealthy[owner]}, nil
}

func TestScan(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	for _, u := range []*core.User{
		{Owner: "a", BorrowedPrimaryShares: 1},
		{Owner: "b"},
		{Owner: "c", BorrowedSecondaryShares: 1},
	} {
		require.NoError(t, store.Users().Create(ctx, u))
	}

	ledger := &fakeLedger{unhealthy: map[string]bool{"c": true}}
	w := New(nil, store.Users(), ledger, nil, Config{Batch: 2})

	next, err := w.scan(ctx, 0)
	require.NoError(t, err)
	assert.NotZero(t, next)
	assert.Equal(t, 0, w.liquidatable)

	next, err = w.scan(ctx, next)
	require.NoError(t, err)
	assert.Zero(t, next)

	assert.Equal(t, []string{"a", "c"}, ledger.asked)
	// counters reset for the next pass
	assert.Zero(t, w.scanned)
}
