package cashier

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"lending/core"
	"lending/pkg/resthttp"
	"lending/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	batches [][]*core.Transfer
	err     error
}

func (r *recorder) Transfer(_ context.Context, transfers ...*core.Transfer) error {
	if r.err != nil {
		return r.err
	}

	r.batches = append(r.batches, transfers)
	return nil
}

func seed(t *testing.T, store *memory.Store) {
	require.NoError(t, store.Transfers().Create(context.Background(),
		&core.Transfer{TraceID: "1", BatchID: "a"},
		&core.Transfer{TraceID: "2", BatchID: "a"},
		&core.Transfer{TraceID: "3", BatchID: "b"},
	))
}

type fakeLedger struct {
	core.LedgerService
	reverted []string
}

func (l *fakeLedger) Revert(_ context.Context, batchID string) (*core.Transaction, error) {
	l.reverted = append(l.reverted, batchID)
	return &core.Transaction{TraceID: batchID}, nil
}

func TestGroupBatches(t *testing.T) {
	transfers := []*core.Transfer{{BatchID: "a"}, {BatchID: "b"}, {BatchID: "a"}}

	batches := groupBatches(transfers)
	require.Len(t, batches, 2)
	assert.Len(t, batches[0], 2)
	assert.Len(t, batches[1], 1)
}

func TestPageEndingInsideBatch(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store)

	r := &recorder{}
	w := New(store.Transfers(), r, &fakeLedger{}, nil, Config{Batch: 1})
	require.NoError(t, w.onWork(ctx, w.sync))

	require.Len(t, r.batches, 1)
	assert.Len(t, r.batches[0], 2)

	pending, err := store.Transfers().Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "b", pending[0].BatchID)
}

func TestRejectedBatchIsReverted(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store)

	ledger := &fakeLedger{}
	r := &recorder{err: &resthttp.Error{Status: http.StatusBadRequest, Msg: "insufficient balance"}}
	w := New(store.Transfers(), r, ledger, nil, Config{Batch: 10})
	require.NoError(t, w.onWork(ctx, w.sync))

	assert.Equal(t, []string{"a", "b"}, ledger.reverted)

	pending, err := store.Transfers().Top(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

type flaky struct {
	recorder
	failing string
}

func (f *flaky) Transfer(ctx context.Context, transfers ...*core.Transfer) error {
	if transfers[0].BatchID == f.failing {
		return errors.New("timeout")
	}

	return f.recorder.Transfer(ctx, transfers...)
}

func TestFailedBatchDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store)

	ledger := &fakeLedger{}
	w := New(store.Transfers(), &flaky{failing: "a"}, ledger, nil, Config{Batch: 10})
	assert.Error(t, w.onWork(ctx, w.sync))
	assert.Empty(t, ledger.reverted)

	pending, err := store.Transfers().Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "a", pending[0].BatchID)
	assert.Equal(t, "a", pending[1].BatchID)
}

func TestDeliver(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store)

	r := &recorder{}
	w := New(store.Transfers(), r, &fakeLedger{}, nil, Config{Batch: 10})
	require.NoError(t, w.onWork(ctx, w.sync))

	require.Len(t, r.batches, 2)
	assert.Len(t, r.batches[0], 2)
	assert.Len(t, r.batches[1], 1)

	pending, err := store.Transfers().Top(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	assert.EqualError(t, w.onWork(ctx, w.sync), "EOF")
}

func TestDeliverFailureKeepsOutbox(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store)

	w := New(store.Transfers(), &recorder{err: errors.New("down")}, &fakeLedger{}, nil, Config{Batch: 10, Capacity: 2})
	assert.Error(t, w.onWork(ctx, w.parallel(2)))

	pending, err := store.Transfers().Top(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}
