package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/charleschow/tda-trading/internal/adapters/outbound/tda_http"
	"github.com/charleschow/tda-trading/internal/config"
	"github.com/charleschow/tda-trading/internal/core/execution"
	"github.com/charleschow/tda-trading/internal/core/options"
	"github.com/charleschow/tda-trading/internal/core/ticker"
	"github.com/charleschow/tda-trading/internal/telemetry"
)

type orderFlags struct {
	ticker    string
	price     string
	quantity  int
	contract  string
	direction string
}

func (f *orderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ticker, "ticker", "", "underlying ticker symbol")
	cmd.Flags().StringVar(&f.price, "price", "", "limit price")
	cmd.Flags().IntVar(&f.quantity, "qty", 1, "number of contracts")
	cmd.Flags().StringVar(&f.contract, "type", "call", "option type: call or put")
	cmd.Flags().StringVar(&f.direction, "side", "buy", "trade direction: buy or sell")
	_ = cmd.MarkFlagRequired("ticker")
	_ = cmd.MarkFlagRequired("price")
}

func (f *orderFlags) strategy() (options.OrderStrategy, error) {
	price, err := decimal.NewFromString(f.price)
	if err != nil {
		return options.OrderStrategy{}, fmt.Errorf("invalid --price %q: %w", f.price, err)
	}
	contract, err := options.ParseContractType(f.contract)
	if err != nil {
		return options.OrderStrategy{}, err
	}
	direction, err := options.ParseTradeDirection(f.direction)
	if err != nil {
		return options.OrderStrategy{}, err
	}
	return options.OrderStrategy{
		Ticker:    ticker.Normalize(f.ticker),
		Price:     price,
		Quantity:  f.quantity,
		Contract:  contract,
		Direction: direction,
	}, nil
}

func newBuilder(cfg *config.Config) (*options.Builder, error) {
	rules, err := config.LoadContractRules(cfg.ContractRulesPath)
	if err != nil {
		return nil, err
	}
	return options.NewBuilder(rules, nil), nil
}

func newBuildCmd(cfg *config.Config) *cobra.Command {
	var flags orderFlags
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Print the order payload without sending it",
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := flags.strategy()
			if err != nil {
				return err
			}
			builder, err := newBuilder(cfg)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(builder.Build(strategy))
		},
	}
	flags.register(cmd)
	return cmd
}

func newPlaceCmd(cfg *config.Config) *cobra.Command {
	var (
		flags   orderFlags
		account string
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Build an order and submit it to TD Ameritrade",
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := flags.strategy()
			if err != nil {
				return err
			}
			builder, err := newBuilder(cfg)
			if err != nil {
				return err
			}
			if account == "" {
				account = cfg.AccountID
			}

			client := tda_http.NewClient(cfg.BaseURL,
				tda_http.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
				tda_http.WithRetryPolicy(tda_http.RetryPolicy{
					MaxAttempts:     cfg.MaxAttempts,
					InitialInterval: cfg.RetryInitialDelay,
					MaxInterval:     cfg.RetryMaxDelay,
				}),
			)
			svc := execution.NewService(builder, client, account, tda_http.BearerHeaders(cfg.AccessToken))
			svc.SetDryRun(dryRun)

			sub, err := svc.Submit(cmd.Context(), strategy)
			if err != nil {
				return err
			}

			if sub.DryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "dry run %s %s\n", sub.ID, sub.Order.Symbol())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "placed %s order_id=%s\n", sub.Order.Symbol(), sub.OrderID)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&account, "account", "", "account id (defaults to TDA_ACCOUNT_ID)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "build and log the order without sending it")
	return cmd
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "tdaorder",
		Short:         "Single-leg options orders for TD Ameritrade",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBuildCmd(cfg), newPlaceCmd(cfg))
	return root
}

func main() {
	cfg := config.Load()
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := newRootCmd(cfg).ExecuteContext(ctx)

	m := &telemetry.Metrics
	telemetry.Debugf("Done  built=%d  sent=%d  retries=%d  errors=%d  p50=%s",
		m.OrdersBuilt.Value(), m.OrdersSent.Value(), m.OrderRetries.Value(), m.OrderErrors.Value(),
		m.SubmitLatency.P50())

	if err != nil {
		telemetry.Errorf("%v", err)
		os.Exit(1)
	}
}
