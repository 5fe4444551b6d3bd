package execution

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleschow/tda-trading/internal/adapters/outbound/tda_http"
	"github.com/charleschow/tda-trading/internal/core/options"
)

type fakePlacer struct {
	calls     int
	accountID string
	order     options.PlaceOrderBody
	headers   http.Header
	resp      *tda_http.PlaceOrderResponse
	err       error
}

func (f *fakePlacer) PlaceOrder(_ context.Context, accountID string, order options.PlaceOrderBody, headers http.Header) (*tda_http.PlaceOrderResponse, error) {
	f.calls++
	f.accountID = accountID
	f.order = order
	f.headers = headers
	return f.resp, f.err
}

func putSell() options.OrderStrategy {
	return options.OrderStrategy{
		Ticker:    "SPY",
		Price:     decimal.RequireFromString("410.2"),
		Quantity:  1,
		Contract:  options.Put,
		Direction: options.Sell,
	}
}

func TestSubmit(t *testing.T) {
	placer := &fakePlacer{resp: &tda_http.PlaceOrderResponse{StatusCode: 201, OrderID: "42"}}
	headers := tda_http.BearerHeaders("tok")
	svc := NewService(options.NewBuilder(nil, nil), placer, "acct", headers)

	sub, err := svc.Submit(context.Background(), putSell())
	require.NoError(t, err)

	assert.Equal(t, 1, placer.calls)
	assert.Equal(t, "acct", placer.accountID)
	assert.Equal(t, headers, placer.headers)
	assert.Equal(t, "SPY_090122P407.5", placer.order.Symbol())
	assert.Equal(t, "42", sub.OrderID)
	assert.NotEmpty(t, sub.ID)
	assert.False(t, sub.DryRun)
}

func TestSubmitDryRun(t *testing.T) {
	placer := &fakePlacer{}
	svc := NewService(options.NewBuilder(nil, nil), placer, "", nil)
	svc.SetDryRun(true)

	sub, err := svc.Submit(context.Background(), putSell())
	require.NoError(t, err)

	assert.Zero(t, placer.calls)
	assert.True(t, sub.DryRun)
	assert.Equal(t, options.InstructionSellToClose, sub.Order.OrderLegCollection[0].Instruction)
}

func TestSubmitErrors(t *testing.T) {
	t.Run("missing account", func(t *testing.T) {
		placer := &fakePlacer{}
		svc := NewService(options.NewBuilder(nil, nil), placer, "", nil)

		_, err := svc.Submit(context.Background(), putSell())
		assert.ErrorContains(t, err, "no account id")
		assert.Zero(t, placer.calls)
	})

	t.Run("broker rejection is surfaced", func(t *testing.T) {
		rejected := &tda_http.RejectedError{StatusCode: 400, Message: "bad symbol"}
		placer := &fakePlacer{err: rejected}
		svc := NewService(options.NewBuilder(nil, nil), placer, "acct", nil)

		_, err := svc.Submit(context.Background(), putSell())
		require.Error(t, err)

		var rej *tda_http.RejectedError
		assert.True(t, errors.As(err, &rej))
		assert.Equal(t, 400, rej.StatusCode)
	})
}
