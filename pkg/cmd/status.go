package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ladderbot/ladderbot/pkg/clock"
	"github.com/ladderbot/ladderbot/pkg/exchange/retry"
	"github.com/ladderbot/ladderbot/pkg/service"
	"github.com/ladderbot/ladderbot/pkg/types"
	"github.com/ladderbot/ladderbot/pkg/util"
)

func init() {
	statusCmd.Flags().String("symbol", "", "the symbol to inspect")
	statusCmd.Flags().Uint64("limit", 5, "number of journal records to show")
	RootCmd.AddCommand(statusCmd)
}

// go run ./cmd/ladderbot status --symbol SOLUSDT
var statusCmd = &cobra.Command{
	Use:          "status --symbol SYMBOL",
	Short:        "Show the position, open orders, stored state and recent trades of a symbol",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		symbol, err := cmd.Flags().GetString("symbol")
		if err != nil {
			return err
		}

		if symbol == "" {
			return fmt.Errorf("--symbol is required")
		}

		limit, err := cmd.Flags().GetUint64("limit")
		if err != nil {
			return err
		}

		environ, err := newEnvironment(ctx, userConfig)
		if err != nil {
			return err
		}
		defer func() {
			util.LogErr(environ.Close(), "environment close error")
		}()

		var amount float64
		var openOrders []types.Order

		clk := clock.Real()
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			amount, err = retry.QueryPositionAmountUntilSuccessful(gctx, clk, environ.Exchange, symbol)
			return err
		})
		g.Go(func() (err error) {
			openOrders, err = retry.QueryOpenOrdersUntilSuccessful(gctx, clk, environ.Exchange, symbol)
			return err
		})

		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Printf("%s position: %f (%s)\n", symbol, amount, types.DirectionFromAmount(amount))

		if len(openOrders) > 0 {
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"order id", "type", "side", "quantity", "price", "stop price", "status"})
			for _, o := range openOrders {
				t.AppendRow(table.Row{o.OrderID, o.Type, o.Side, o.Quantity, o.Price, o.StopPrice, o.Status})
			}
			t.Render()
		}

		states := service.NewSymbolStateService(service.NewPersistenceService(userConfig.Persistence))
		state, err := states.Load(symbol)
		if err != nil {
			return err
		}

		fmt.Printf("state: running=%v trend=%q updated=%s\n", state.IsRunning, state.Trend, state.UpdatedAt)

		if environ.Journal == nil {
			return nil
		}

		records, err := environ.Journal.Query(ctx, service.QueryTradeRecordsOptions{
			Symbol: symbol,
			Limit:  limit,
		})
		if err != nil {
			return err
		}

		profit := color.New(color.FgGreen).SprintFunc()
		loss := color.New(color.FgRed).SprintFunc()

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"started", "side", "strategy", "outcome", "filled", "entry", "fills", "p/l"})
		for _, r := range records {
			pnl := types.FormatMoney(userConfig.Exchange.QuoteAsset, r.ProfitAndLoss)
			if r.ProfitAndLoss < 0 {
				pnl = loss(pnl)
			} else {
				pnl = profit(pnl)
			}

			t.AppendRow(table.Row{
				r.StartedAt.Format("2006-01-02 15:04:05"), r.Side, r.Strategy, r.Outcome,
				r.FilledQuantity, r.EntryPrice, r.LadderFills, pnl,
			})
		}
		t.Render()

		return nil
	},
}
