package cmd

import (
	"context"
	"strconv"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ladderbot/ladderbot/pkg/cmd/cmdutil"
	"github.com/ladderbot/ladderbot/pkg/types"
	"github.com/ladderbot/ladderbot/pkg/util"
)

func init() {
	tradeCmd.Flags().String("symbol", "", "the symbol to trade, e.g. SOLUSDT")
	tradeCmd.Flags().String("side", "", "BUY or SELL")
	tradeCmd.Flags().String("type", string(types.OrderTypeLimit), "entry order type, LIMIT or MARKET")
	tradeCmd.Flags().Float64("price", 0, "entry price, also the sizing reference of a MARKET entry")
	tradeCmd.Flags().Float64("take-profit", 0, "first take-profit target")
	tradeCmd.Flags().Float64("stop-loss", 0, "initial stop-loss price")
	tradeCmd.Flags().Float64("percentage", 1, "percentage of the balance to risk, 0-100")
	tradeCmd.Flags().String("strategy", "trend", "strategy tag, highVol doubles the first rung")
	RootCmd.AddCommand(tradeCmd)
}

// go run ./cmd/ladderbot trade --symbol SOLUSDT --side BUY --price 100 --take-profit 110 --stop-loss 95 --percentage 2
var tradeCmd = &cobra.Command{
	Use:          "trade",
	Short:        "execute one trade and wait until its exit ladder is done",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		data := map[string]string{}
		for _, name := range []string{"symbol", "side", "type", "strategy"} {
			v, err := cmd.Flags().GetString(name)
			if err != nil {
				return err
			}
			data[name] = v
		}

		for flagName, key := range map[string]string{
			"price":       "price",
			"take-profit": "take_profit",
			"stop-loss":   "stop_loss",
			"percentage":  "percentage",
		} {
			v, err := cmd.Flags().GetFloat64(flagName)
			if err != nil {
				return err
			}
			data[key] = strconv.FormatFloat(v, 'f', -1, 64)
		}

		signal, err := types.ParseSignal(data)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			if sig := cmdutil.WaitForSignal(ctx, syscall.SIGINT, syscall.SIGTERM); sig != nil {
				cancel()
			}
		}()

		environ, err := newEnvironment(ctx, userConfig)
		if err != nil {
			return err
		}
		defer func() {
			util.LogErr(environ.Close(), "environment close error")
		}()

		log.Infof("executing %s", signal)
		if !environ.NewTrader().ExecuteTrade(ctx, *signal) {
			return errors.Errorf("%s trade did not complete", signal.Symbol)
		}

		log.Infof("%s trade completed", signal.Symbol)
		return nil
	},
}
