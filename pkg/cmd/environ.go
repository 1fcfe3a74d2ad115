package cmd

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"gopkg.in/tucnak/telebot.v2"

	"github.com/ladderbot/ladderbot/pkg/clock"
	"github.com/ladderbot/ladderbot/pkg/cmd/cmdutil"
	"github.com/ladderbot/ladderbot/pkg/config"
	"github.com/ladderbot/ladderbot/pkg/exchange/binance"
	"github.com/ladderbot/ladderbot/pkg/notifier"
	"github.com/ladderbot/ladderbot/pkg/notifier/slacknotifier"
	"github.com/ladderbot/ladderbot/pkg/notifier/telegramnotifier"
	"github.com/ladderbot/ladderbot/pkg/service"
	"github.com/ladderbot/ladderbot/pkg/slack/slacklog"
	"github.com/ladderbot/ladderbot/pkg/trader"
	"github.com/ladderbot/ladderbot/pkg/util/id"
)

// environment holds the services shared by the commands.
type environment struct {
	Config       *config.Config
	Exchange     *binance.Exchange
	Notification *notifier.Notifiability
	Database     *service.DatabaseService
	Journal      *service.TradeJournalService
}

func newEnvironment(ctx context.Context, conf *config.Config) (*environment, error) {
	ex, err := cmdutil.NewExchange(
		viper.GetString("binance-api-key"),
		viper.GetString("binance-api-secret"),
		conf.Exchange.RateLimit,
		conf.Exchange.Testnet || viper.GetBool("testnet"),
	)
	if err != nil {
		return nil, err
	}

	environ := &environment{
		Config:       conf,
		Exchange:     ex,
		Notification: &notifier.Notifiability{},
	}

	if err := environ.configureNotification(); err != nil {
		return nil, err
	}

	if conf.Database != nil {
		if err := environ.configureDatabase(ctx); err != nil {
			return nil, err
		}
	}

	return environ, nil
}

func (e *environment) configureNotification() error {
	conf := e.Config.Notifications
	if conf == nil {
		return nil
	}

	slackToken := viper.GetString("slack-token")
	if len(slackToken) > 0 && conf.Slack != nil {
		client := slack.New(slackToken)

		if conf.Slack.ErrorChannel != "" {
			log.Infof("found slack configured, setting up log hook...")
			log.AddHook(slacklog.NewLogHook(client, conf.Slack.ErrorChannel))
		}

		if conf.Slack.DefaultChannel != "" {
			log.Infof("adding slack notifier with default channel: %s", conf.Slack.DefaultChannel)
			e.Notification.AddNotifier(slacknotifier.New(client, conf.Slack.DefaultChannel))
		}
	}

	telegramBotToken := viper.GetString("telegram-bot-token")
	if len(telegramBotToken) > 0 && conf.Telegram != nil {
		if conf.Telegram.ChatID == 0 {
			return errors.New("notifications.telegram.chatID is required")
		}

		log.Infof("initializing telegram bot...")
		bot, err := telebot.NewBot(telebot.Settings{
			Token: telegramBotToken,
		})
		if err != nil {
			return errors.Wrap(err, "unable to create telegram bot")
		}

		e.Notification.AddNotifier(telegramnotifier.New(bot, conf.Telegram.ChatID))
	}

	return nil
}

func (e *environment) configureDatabase(ctx context.Context) error {
	db, err := service.NewDatabaseService(e.Config.Database.Driver, e.Config.Database.DSN)
	if err != nil {
		return err
	}

	if err := db.Connect(); err != nil {
		return errors.Wrapf(err, "unable to connect to %s", e.Config.Database.Driver)
	}

	if err := db.Migrate(ctx); err != nil {
		return multierr.Append(err, db.Close())
	}

	e.Database = db
	e.Journal = service.NewTradeJournalService(db.DB)
	return nil
}

func (e *environment) NewTrader() *trader.Trader {
	var options []trader.Option
	if e.Journal != nil {
		options = append(options, trader.WithJournal(e.Journal, id.New))
	}

	return trader.New(e.Exchange, clock.Real(), e.Notification, e.Config.TraderConfig(), options...)
}

func (e *environment) Close() error {
	if e.Database != nil {
		return e.Database.Close()
	}
	return nil
}
