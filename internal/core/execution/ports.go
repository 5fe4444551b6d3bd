package execution

import (
	"context"
	"net/http"

	"github.com/charleschow/tda-trading/internal/adapters/outbound/tda_http"
	"github.com/charleschow/tda-trading/internal/core/options"
)

// OrderPlacer abstracts the ability to place orders with the broker.
// Satisfied by *tda_http.Client.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, accountID string, order options.PlaceOrderBody, headers http.Header) (*tda_http.PlaceOrderResponse, error)
}
