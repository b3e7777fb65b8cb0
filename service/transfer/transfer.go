package transfer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"lending/core"
	"lending/pkg/number"
	"lending/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// Config transfer service settings
type Config struct {
	Endpoint string `json:"endpoint" valid:"url,required"`
}

type transferItem struct {
	TraceID   string          `json:"trace_id"`
	AssetID   string          `json:"asset_id"`
	Amount    decimal.Decimal `json:"amount"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Authority string          `json:"authority"`
	Memo      string          `json:"memo,omitempty"`
}

type batchRequest struct {
	BatchID   string          `json:"batch_id"`
	Transfers []*transferItem `json:"transfers"`
}

type client struct {
	cfg Config
}

// New http client of the token transfer service, each call is one atomic batch
func New(cfg Config) core.TransferService {
	return &client{cfg: cfg}
}

func (c *client) Transfer(ctx context.Context, transfers ...*core.Transfer) error {
	if len(transfers) == 0 {
		return nil
	}

	req := batchRequest{BatchID: transfers[0].BatchID}
	for _, t := range transfers {
		if t.BatchID != req.BatchID {
			return errors.New("transfers span more than one batch")
		}

		req.Transfers = append(req.Transfers, &transferItem{
			TraceID:   t.TraceID,
			AssetID:   t.AssetID,
			Amount:    number.FromUint64(t.Amount).Shift(-int32(t.Decimals)),
			From:      t.From,
			To:        t.To,
			Authority: t.Authority.String(),
			Memo:      t.Memo,
		})
	}

	log := logger.FromContext(ctx).WithField("batch_id", req.BatchID)

	resp, err := resthttp.WithRequestID(ctx, req.BatchID).
		SetBody(req).
		Post(fmt.Sprintf("%s/transfers", c.cfg.Endpoint))
	if err != nil {
		log.WithError(err).Errorln("post transfers")
		return err
	}

	if err := resthttp.ParseResponse(resp, nil); err != nil {
		log.WithError(err).Errorln("transfers rejected")
		return err
	}

	return nil
}

// IsRejected reports whether the transfer service refused the batch for
// good, as opposed to a failure worth retrying
func IsRejected(err error) bool {
	var e *resthttp.Error
	if !errors.As(err, &e) {
		return false
	}

	switch e.Status {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}

	return e.Status >= 400 && e.Status < 500
}

type outbox struct {
	client    core.TransferService
	transfers core.TransferStore
}

// NewOutbox delivers batches that debit a signer through client inside the
// operation, so a refused debit aborts it. Batches made only of pool payouts
// are recorded in the operation's transaction for the cashier worker.
func NewOutbox(client core.TransferService, transfers core.TransferStore) core.TransferService {
	return &outbox{client: client, transfers: transfers}
}

func (o *outbox) Transfer(ctx context.Context, transfers ...*core.Transfer) error {
	if len(transfers) == 0 {
		return nil
	}

	for _, t := range transfers {
		if t.Authority != core.AuthorityPool {
			return o.client.Transfer(ctx, transfers...)
		}
	}

	if err := o.transfers.Create(ctx, transfers...); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("transfers.Create")
		return err
	}

	return nil
}
