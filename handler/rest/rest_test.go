package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lending/core"
	"lending/handler/render"
	"lending/pkg/number"
	"lending/service/ledger"
	"lending/service/transfer"
	"lending/store/memory"

	"github.com/fox-one/pkg/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticOracle map[string]uint64

func (o staticOracle) Quote(_ context.Context, assetID string, _ time.Duration) (*core.PriceQuote, error) {
	return &core.PriceQuote{AssetID: assetID, Price: o[assetID], ObservedAt: time.Now()}, nil
}

type recorder struct {
	batches [][]*core.Transfer
}

func (r *recorder) Transfer(_ context.Context, transfers ...*core.Transfer) error {
	r.batches = append(r.batches, transfers)
	return nil
}

type envelope struct {
	Data json.RawMessage `json:"data"`
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
}

type server struct {
	t       *testing.T
	store   *memory.Store
	client  *recorder
	handler http.Handler
}

func newServer(t *testing.T) *server {
	store := memory.New()
	client := &recorder{}
	svc := ledger.New(
		store,
		store.Banks(),
		store.Users(),
		store.Transactions(),
		staticOracle{"usdc": number.PriceScale, "sol": 20 * number.PriceScale},
		transfer.NewOutbox(client, store.Transfers()),
		ledger.Config{MaxPriceAge: time.Minute},
	)

	return &server{
		t:       t,
		store:   store,
		client:  client,
		handler: render.WrapResponse(false)(Handle(svc, store.Banks(), store.Users(), store.Transactions())),
	}
}

func (s *server) do(method, path string, body interface{}) (int, envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, httptest.NewRequest(method, path, &buf))

	var resp envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func (s *server) initBanks() {
	for _, asset := range []string{"usdc", "sol"} {
		status, _ := s.do(http.MethodPost, "/banks", core.BankParams{
			AssetID:                asset,
			Decimals:               8,
			LiquidationThreshold:   number.Wad / 2,
			MaxLTV:                 number.Wad / 2,
			LiquidationBonus:       number.Wad / 10,
			LiquidationCloseFactor: number.Wad / 2,
		})
		require.Equal(s.t, http.StatusOK, status)
	}
}

func TestBanks(t *testing.T) {
	s := newServer(t)
	s.initBanks()

	status, resp := s.do(http.MethodGet, "/banks", nil)
	require.Equal(t, http.StatusOK, status)

	var banks []core.Bank
	require.NoError(t, json.Unmarshal(resp.Data, &banks))
	assert.Len(t, banks, 2)

	status, resp = s.do(http.MethodGet, "/banks/usdc", nil)
	require.Equal(t, http.StatusOK, status)

	var bank core.Bank
	require.NoError(t, json.Unmarshal(resp.Data, &bank))
	assert.Equal(t, "usdc", bank.AssetID)

	status, resp = s.do(http.MethodGet, "/banks/btc", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, int(core.ErrBankNotFound), resp.Code)

	status, resp = s.do(http.MethodPost, "/banks", core.BankParams{AssetID: "eth", LiquidationThreshold: 2 * number.Wad})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, int(core.ErrInvalidAmount), resp.Code)
}

func TestOperations(t *testing.T) {
	s := newServer(t)
	s.initBanks()

	status, _ := s.do(http.MethodPost, "/users", map[string]string{"owner": "alice", "primary_asset_id": "usdc"})
	require.Equal(t, http.StatusOK, status)

	deposit := core.Request{TraceID: uuid.New(), Owner: "alice", AssetID: "usdc", Amount: 1000}
	status, resp := s.do(http.MethodPost, "/deposit", deposit)
	require.Equal(t, http.StatusOK, status, resp.Msg)

	var tx core.Transaction
	require.NoError(t, json.Unmarshal(resp.Data, &tx))
	assert.Equal(t, core.ActionTypeDeposit, tx.Action)
	assert.Equal(t, uint64(1000), tx.Shares)

	// replay
	status, resp = s.do(http.MethodPost, "/deposit", deposit)
	require.Equal(t, http.StatusOK, status)
	var replay core.Transaction
	require.NoError(t, json.Unmarshal(resp.Data, &replay))
	assert.Equal(t, tx.ID, replay.ID)

	status, _ = s.do(http.MethodPost, "/users", map[string]string{"owner": "bob", "primary_asset_id": "sol"})
	require.Equal(t, http.StatusOK, status)
	status, resp = s.do(http.MethodPost, "/deposit", core.Request{TraceID: uuid.New(), Owner: "bob", AssetID: "sol", Amount: 100})
	require.Equal(t, http.StatusOK, status, resp.Msg)

	// 1000 usdc at 0.5 threshold backs 25 sol at price 20
	status, resp = s.do(http.MethodPost, "/borrow", core.Request{TraceID: uuid.New(), Owner: "alice", AssetID: "sol", Amount: 26})
	assert.Equal(t, http.StatusPreconditionFailed, status)
	assert.Equal(t, int(core.ErrInsufficientCollateral), resp.Code)

	status, resp = s.do(http.MethodPost, "/deposit", core.Request{TraceID: uuid.New(), Owner: "carol", AssetID: "sol", Amount: 100})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, int(core.ErrUserNotFound), resp.Code)

	status, resp = s.do(http.MethodPost, "/withdraw", core.Request{TraceID: "not-a-uuid", Owner: "alice", AssetID: "usdc", Amount: 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 100001, resp.Code)

	status, resp = s.do(http.MethodGet, "/users/alice/transactions?limit=10", nil)
	require.Equal(t, http.StatusOK, status)
	var list []core.Transaction
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Len(t, list, 1)

	// deposits debit the signer and never wait in the outbox
	pending, err := s.store.Transfers().Top(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.Len(t, s.client.batches, 2)
	assert.Equal(t, tx.TraceID, s.client.batches[0][0].BatchID)
	assert.Equal(t, "alice", s.client.batches[0][0].From)

	status, resp = s.do(http.MethodPost, "/borrow", core.Request{TraceID: uuid.New(), Owner: "alice", AssetID: "sol", Amount: 20})
	require.Equal(t, http.StatusOK, status, resp.Msg)

	pending, err = s.store.Transfers().Top(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, core.AuthorityPool, pending[0].Authority)
	assert.Equal(t, "alice", pending[0].To)
}

func TestUsers(t *testing.T) {
	s := newServer(t)
	s.initBanks()

	status, resp := s.do(http.MethodGet, "/users/alice", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, int(core.ErrUserNotFound), resp.Code)

	status, _ = s.do(http.MethodPost, "/users", map[string]string{"owner": "alice", "primary_asset_id": "usdc"})
	require.Equal(t, http.StatusOK, status)

	status, resp = s.do(http.MethodGet, "/users/alice", nil)
	require.Equal(t, http.StatusOK, status)
	var user core.User
	require.NoError(t, json.Unmarshal(resp.Data, &user))
	assert.Equal(t, "usdc", user.PrimaryAssetID)

	status, resp = s.do(http.MethodGet, "/users/alice/health", nil)
	require.Equal(t, http.StatusOK, status)
	var health core.Health
	require.NoError(t, json.Unmarshal(resp.Data, &health))
	assert.False(t, health.Liquidatable)
	assert.Nil(t, health.Primary.HealthFactor)

	status, _ = s.do(http.MethodGet, "/unknown", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
