package cmdutil

import "github.com/spf13/pflag"

// PersistentFlags defines the credential and notification flags.
// Each one falls back to the upper-cased env var, e.g. BINANCE_API_KEY.
func PersistentFlags(flags *pflag.FlagSet) {
	flags.String("binance-api-key", "", "binance api key")
	flags.String("binance-api-secret", "", "binance api secret")
	flags.Bool("testnet", false, "use the binance futures testnet")

	flags.String("slack-token", "", "slack token")
	flags.String("telegram-bot-token", "", "telegram bot token from bot father")
}
