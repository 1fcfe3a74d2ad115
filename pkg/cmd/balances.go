package cmd

import (
	"context"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ladderbot/ladderbot/pkg/types"
	"github.com/ladderbot/ladderbot/pkg/util"
)

func init() {
	balancesCmd.Flags().String("asset", "", "only show the given asset")
	RootCmd.AddCommand(balancesCmd)
}

// go run ./cmd/ladderbot balances --asset USDT
var balancesCmd = &cobra.Command{
	Use:          "balances [--asset ASSET]",
	Short:        "Show futures wallet balances",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		asset, err := cmd.Flags().GetString("asset")
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

		balances, err := environ.Exchange.QueryAccountBalances(ctx)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"asset", "balance", "cross wallet", "available"})

		for _, b := range balances {
			if asset != "" && b.Asset != asset {
				continue
			}

			t.AppendRow(table.Row{
				b.Asset,
				types.FormatMoney(b.Asset, b.Balance),
				types.FormatMoney(b.Asset, b.CrossWalletBalance),
				types.FormatMoney(b.Asset, b.AvailableBalance),
			})
		}

		t.Render()
		return nil
	},
}
