package config

import (
	"os"

	"github.com/codingconcepts/env"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ladderbot/ladderbot/pkg/service"
	"github.com/ladderbot/ladderbot/pkg/trader"
	"github.com/ladderbot/ladderbot/pkg/types"
	"github.com/ladderbot/ladderbot/pkg/util"
)

const DefaultConfigFile = "ladderbot.yaml"

type WebhookConfig struct {
	Bind      string `json:"bind" yaml:"bind"`
	AuthToken string `json:"authToken" yaml:"authToken"`
}

type ExchangeConfig struct {
	// RateLimit uses the "10+5/1s" syntax: a burst of 10, then 5 requests per second.
	RateLimit  string `json:"rateLimit,omitempty" yaml:"rateLimit,omitempty"`
	QuoteAsset string `json:"quoteAsset" yaml:"quoteAsset"`
	Testnet    bool   `json:"testnet,omitempty" yaml:"testnet,omitempty"`
}

type TradingConfig struct {
	EntryTimeout       types.Duration `json:"entryTimeout" yaml:"entryTimeout"`
	ExitOrderTimeout   types.Duration `json:"exitOrderTimeout" yaml:"exitOrderTimeout"`
	PollInterval       types.Duration `json:"pollInterval" yaml:"pollInterval"`
	RetryInterval      types.Duration `json:"retryInterval" yaml:"retryInterval"`
	PartialFillGrace   types.Duration `json:"partialFillGrace" yaml:"partialFillGrace"`
	RungPacing         types.Duration `json:"rungPacing" yaml:"rungPacing"`
	SupervisionTimeout types.Duration `json:"supervisionTimeout,omitempty" yaml:"supervisionTimeout,omitempty"`

	HighVolStrategy string      `json:"highVolStrategy" yaml:"highVolStrategy"`
	TradeStrategies StringSlice `json:"tradeStrategies" yaml:"tradeStrategies"`
	StateStrategy   string      `json:"stateStrategy" yaml:"stateStrategy"`
}

type DatabaseConfig struct {
	Driver string `json:"driver" yaml:"driver"`
	DSN    string `json:"dsn" yaml:"dsn"`
}

type SlackNotification struct {
	DefaultChannel string `json:"defaultChannel,omitempty" yaml:"defaultChannel,omitempty"`
	ErrorChannel   string `json:"errorChannel,omitempty" yaml:"errorChannel,omitempty"`
}

type TelegramNotification struct {
	ChatID int64 `json:"chatID" yaml:"chatID"`
}

type NotificationConfig struct {
	Slack    *SlackNotification    `json:"slack,omitempty" yaml:"slack,omitempty"`
	Telegram *TelegramNotification `json:"telegram,omitempty" yaml:"telegram,omitempty"`
}

type LoggingConfig struct {
	Directory  string `json:"directory,omitempty" yaml:"directory,omitempty"`
	MaxSizeMB  int    `json:"maxSizeMB,omitempty" yaml:"maxSizeMB,omitempty"`
	MaxBackups int    `json:"maxBackups,omitempty" yaml:"maxBackups,omitempty"`
}

type Config struct {
	Webhook       WebhookConfig              `json:"webhook" yaml:"webhook"`
	Exchange      ExchangeConfig             `json:"exchange" yaml:"exchange"`
	Trading       TradingConfig              `json:"trading" yaml:"trading"`
	Persistence   *service.PersistenceConfig `json:"persistence,omitempty" yaml:"persistence,omitempty"`
	Database      *DatabaseConfig            `json:"database,omitempty" yaml:"database,omitempty"`
	Notifications *NotificationConfig        `json:"notifications,omitempty" yaml:"notifications,omitempty"`
	Logging       *LoggingConfig             `json:"logging,omitempty" yaml:"logging,omitempty"`
}

func Default() *Config {
	defaults := trader.DefaultConfig()
	return &Config{
		Webhook: WebhookConfig{
			Bind: ":8080",
		},
		Exchange: ExchangeConfig{
			QuoteAsset: defaults.QuoteAsset,
		},
		Trading: TradingConfig{
			EntryTimeout:       types.Duration(defaults.EntryTimeout),
			ExitOrderTimeout:   types.Duration(defaults.ExitOrderTimeout),
			PollInterval:       types.Duration(defaults.PollInterval),
			RetryInterval:      types.Duration(defaults.RetryInterval),
			PartialFillGrace:   types.Duration(defaults.PartialFillGrace),
			RungPacing:         types.Duration(defaults.RungPacing),
			SupervisionTimeout: types.Duration(defaults.SupervisionTimeout),
			HighVolStrategy:    defaults.HighVolStrategy,
			TradeStrategies:    StringSlice{"trend", "scalp", defaults.HighVolStrategy},
			StateStrategy:      "state",
		},
	}
}

// Load reads a yaml file on top of the defaults, then applies the env overrides.
func Load(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	config, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, errors.Wrap(err, "unable to apply env overrides")
	}

	return config, nil
}

// ApplyEnv overrides the redis settings from REDIS_HOST, REDIS_PORT, REDIS_PASSWORD, REDIS_DB and REDIS_NAMESPACE.
func (c *Config) ApplyEnv() error {
	if c.Persistence == nil || c.Persistence.Redis == nil {
		return nil
	}

	return env.Set(c.Persistence.Redis)
}

func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "unable to parse config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.Exchange.QuoteAsset == "" {
		return errors.New("exchange.quoteAsset is required")
	}

	if c.Exchange.RateLimit != "" {
		if _, err := util.ParseRateLimitSyntax(c.Exchange.RateLimit); err != nil {
			return errors.Wrapf(err, "invalid exchange.rateLimit %q", c.Exchange.RateLimit)
		}
	}

	durations := map[string]types.Duration{
		"entryTimeout":     c.Trading.EntryTimeout,
		"exitOrderTimeout": c.Trading.ExitOrderTimeout,
		"pollInterval":     c.Trading.PollInterval,
		"retryInterval":    c.Trading.RetryInterval,
	}
	for name, d := range durations {
		if d.Duration() <= 0 {
			return errors.Errorf("trading.%s must be positive, got %s", name, d.Duration())
		}
	}

	if c.Trading.PartialFillGrace < 0 || c.Trading.RungPacing < 0 || c.Trading.SupervisionTimeout < 0 {
		return errors.New("trading durations can not be negative")
	}

	if len(c.Trading.TradeStrategies) == 0 {
		return errors.New("trading.tradeStrategies can not be empty")
	}

	if c.Database != nil {
		switch c.Database.Driver {
		case "sqlite3", "mysql":
		default:
			return errors.Errorf("unsupported database driver %q", c.Database.Driver)
		}

		if c.Database.DSN == "" {
			return errors.New("database.dsn is required")
		}
	}

	if c.Persistence != nil && c.Persistence.Redis == nil && c.Persistence.Json == nil {
		return errors.New("persistence requires either redis or json")
	}

	return nil
}

// TraderConfig maps the trading section onto the trader settings.
func (c *Config) TraderConfig() trader.Config {
	return trader.Config{
		QuoteAsset:         c.Exchange.QuoteAsset,
		EntryTimeout:       c.Trading.EntryTimeout.Duration(),
		ExitOrderTimeout:   c.Trading.ExitOrderTimeout.Duration(),
		PollInterval:       c.Trading.PollInterval.Duration(),
		RetryInterval:      c.Trading.RetryInterval.Duration(),
		PartialFillGrace:   c.Trading.PartialFillGrace.Duration(),
		RungPacing:         c.Trading.RungPacing.Duration(),
		SupervisionTimeout: c.Trading.SupervisionTimeout.Duration(),
		HighVolStrategy:    c.Trading.HighVolStrategy,
	}
}

func (c *LoggingConfig) MaxSize() int {
	if c.MaxSizeMB <= 0 {
		return 100
	}
	return c.MaxSizeMB
}
