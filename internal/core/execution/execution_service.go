package execution

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/charleschow/tda-trading/internal/adapters/outbound/tda_http"
	"github.com/charleschow/tda-trading/internal/core/options"
	"github.com/charleschow/tda-trading/internal/telemetry"
)

var _ OrderPlacer = (*tda_http.Client)(nil)

// Submission is the outcome of one Submit call.
type Submission struct {
	ID      string
	Order   options.PlaceOrderBody
	DryRun  bool
	OrderID string
	Latency time.Duration
}

// Service builds single-leg option orders and hands them to the broker.
type Service struct {
	builder   *options.Builder
	client    OrderPlacer
	accountID string
	headers   http.Header
	dryRun    bool
}

func NewService(builder *options.Builder, client OrderPlacer, accountID string, headers http.Header) *Service {
	return &Service{
		builder:   builder,
		client:    client,
		accountID: accountID,
		headers:   headers,
	}
}

// SetDryRun makes Submit build and log orders without sending them.
func (s *Service) SetDryRun(v bool) { s.dryRun = v }

func (s *Service) Submit(ctx context.Context, strategy options.OrderStrategy) (*Submission, error) {
	order := s.builder.Build(strategy)
	telemetry.Metrics.OrdersBuilt.Inc()

	sub := &Submission{
		ID:     uuid.NewString(),
		Order:  order,
		DryRun: s.dryRun,
	}
	log := telemetry.L().With("submission", sub.ID)

	if s.dryRun {
		log.Info(fmt.Sprintf("execution: dry run symbol=%s instruction=%s qty=%d price=%s",
			order.Symbol(), strategy.Direction.Instruction(), strategy.Quantity, strategy.Price))
		return sub, nil
	}

	if s.accountID == "" {
		return nil, fmt.Errorf("submit %s: no account id configured", order.Symbol())
	}

	start := time.Now()
	resp, err := s.client.PlaceOrder(ctx, s.accountID, order, s.headers)
	sub.Latency = time.Since(start)
	telemetry.Metrics.SubmitLatency.Record(sub.Latency)
	if err != nil {
		log.Error(fmt.Sprintf("execution: order failed symbol=%s: %v", order.Symbol(), err))
		return nil, fmt.Errorf("submit %s: %w", order.Symbol(), err)
	}

	sub.OrderID = resp.OrderID
	log.Info(fmt.Sprintf("execution: order accepted symbol=%s order_id=%s latency=%s",
		order.Symbol(), resp.OrderID, sub.Latency))

	return sub, nil
}
