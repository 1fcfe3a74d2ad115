package cmd

import (
	"context"
	"syscall"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ladderbot/ladderbot/pkg/clock"
	"github.com/ladderbot/ladderbot/pkg/cmd/cmdutil"
	"github.com/ladderbot/ladderbot/pkg/exchange/retry"
	"github.com/ladderbot/ladderbot/pkg/metrics"
	"github.com/ladderbot/ladderbot/pkg/server"
	"github.com/ladderbot/ladderbot/pkg/service"
	"github.com/ladderbot/ladderbot/pkg/util"
)

func init() {
	RunCmd.Flags().String("bind", "", "webhook server bind address, overrides webhook.bind")
	RunCmd.Flags().String("webhook-token", "", "webhook auth token, overrides webhook.authToken")
	RootCmd.AddCommand(RunCmd)
}

// go run ./cmd/ladderbot run --config ladderbot.yaml
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "run the webhook server",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	bind := userConfig.Webhook.Bind
	if b, _ := cmd.Flags().GetString("bind"); b != "" {
		bind = b
	}

	authToken := userConfig.Webhook.AuthToken
	if token, _ := cmd.Flags().GetString("webhook-token"); token != "" {
		authToken = token
	} else if token := viper.GetString("webhook-token"); token != "" {
		authToken = token
	}

	if authToken == "" {
		return errors.New("webhook auth token is required, set webhook.authToken or WEBHOOK_TOKEN")
	}

	// the server stops on the first signal; running trades are only cancelled by a second one
	serverCtx, stopServer := context.WithCancel(context.Background())
	defer stopServer()

	tradeCtx, cancelTrades := context.WithCancel(context.Background())
	defer cancelTrades()

	environ, err := newEnvironment(tradeCtx, userConfig)
	if err != nil {
		return err
	}

	defer func() {
		util.LogErr(environ.Close(), "environment close error")
	}()

	persistence := service.NewPersistenceService(userConfig.Persistence)
	switch p := persistence.(type) {
	case *service.RedisPersistenceService:
		defer func() {
			util.LogErr(p.Close(), "redis close error")
		}()

		if err := p.Ping(serverCtx); err != nil {
			return errors.Wrap(err, "redis is not reachable")
		}

	case *service.JsonPersistenceService:
		unlock, err := p.Lock()
		if err != nil {
			return err
		}
		defer func() {
			util.LogErr(unlock(), "state directory unlock error")
		}()
	}

	// refresh the balance gauge between trades
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 1m", func() {
		balance, err := retry.QueryBalanceUntilSuccessful(serverCtx, clock.Real(), environ.Exchange, userConfig.Exchange.QuoteAsset)
		if err != nil {
			log.WithError(err).Warn("unable to refresh the account balance")
			return
		}
		metrics.AccountBalanceMetrics.WithLabelValues(userConfig.Exchange.QuoteAsset).Set(balance)
	}); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := server.New(tradeCtx, authToken, service.NewSymbolStateService(persistence), environ.NewTrader())
	srv.TradeStrategies = userConfig.Trading.TradeStrategies
	srv.StateStrategy = userConfig.Trading.StateStrategy

	go func() {
		if sig := cmdutil.WaitForSignal(serverCtx, syscall.SIGINT, syscall.SIGTERM); sig == nil {
			return
		}

		log.Info("shutting down, waiting for running trades. send the signal again to cancel them")
		stopServer()

		if sig := cmdutil.WaitForSignal(tradeCtx, syscall.SIGINT, syscall.SIGTERM); sig != nil {
			log.Warn("cancelling running trades")
			cancelTrades()
		}
	}()

	return srv.Run(serverCtx, bind)
}
