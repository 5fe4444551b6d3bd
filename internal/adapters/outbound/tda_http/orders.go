package tda_http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/charleschow/tda-trading/internal/core/options"
	"github.com/charleschow/tda-trading/internal/telemetry"
)

// PlaceOrderResponse describes an accepted order. TD answers 201 with an
// empty body and the new order's URL in the Location header.
type PlaceOrderResponse struct {
	StatusCode int
	Location   string
	OrderID    string
}

// RejectedError is returned when the broker answers with a non-2xx status.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("order rejected: status=%d body=%s", e.StatusCode, e.Message)
}

// Transient reports whether the rejection was retryable (408, 429, 5xx).
func (e *RejectedError) Transient() bool {
	return transientStatus(e.StatusCode)
}

func newRejectedError(r *rawResponse) *RejectedError {
	var errBody struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(r.Body))
	if err := json.Unmarshal(r.Body, &errBody); err == nil && errBody.Error != "" {
		msg = errBody.Error
	}
	return &RejectedError{StatusCode: r.StatusCode, Message: msg}
}

// PlaceOrder posts order to /accounts/{accountID}/orders, retrying transport
// errors and transient statuses with exponential backoff.
func (c *Client) PlaceOrder(ctx context.Context, accountID string, order options.PlaceOrderBody, headers http.Header) (*PlaceOrderResponse, error) {
	endpoint := fmt.Sprintf("/accounts/%s/orders", url.PathEscape(accountID))

	var (
		attempt int
		resp    *rawResponse
	)
	op := func() error {
		attempt++
		r, err := c.post(ctx, endpoint, order, headers)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		if r.StatusCode < 200 || r.StatusCode >= 300 {
			rej := newRejectedError(r)
			if rej.Transient() {
				return rej
			}
			return backoff.Permanent(rej)
		}
		resp = r
		return nil
	}
	notify := func(err error, wait time.Duration) {
		telemetry.Metrics.OrderRetries.Inc()
		telemetry.Warnf("tda_http: place order attempt %d failed: %v (retrying in %s)", attempt, err, wait)
	}

	if err := backoff.RetryNotify(op, c.retry.backOff(ctx), notify); err != nil {
		telemetry.Metrics.OrderErrors.Inc()
		return nil, fmt.Errorf("place order after %d attempt(s): %w", attempt, err)
	}

	out := &PlaceOrderResponse{
		StatusCode: resp.StatusCode,
		Location:   resp.Header.Get("Location"),
	}
	if out.Location != "" {
		if u, err := url.Parse(out.Location); err == nil {
			out.OrderID = path.Base(u.Path)
		}
	}

	telemetry.Metrics.OrdersSent.Inc()
	telemetry.Infof("tda: order placed account=%s symbol=%s qty=%d -> %s",
		accountID, order.Symbol(), legQuantity(order), out.OrderID)

	return out, nil
}

func legQuantity(order options.PlaceOrderBody) int {
	if len(order.OrderLegCollection) == 0 {
		return 0
	}
	return order.OrderLegCollection[0].Quantity
}
