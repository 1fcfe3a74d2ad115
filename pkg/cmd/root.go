package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ladderbot/ladderbot/pkg/cmd/cmdutil"
	"github.com/ladderbot/ladderbot/pkg/config"
)

var userConfig *config.Config

var RootCmd = &cobra.Command{
	Use:   "ladderbot",
	Short: "ladderbot futures trade executor",
	Long:  "ladderbot opens leveraged futures positions from webhook signals and exits them through a take-profit ladder",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dotenvFile := viper.GetString("dotenv")
		if _, err := os.Stat(dotenvFile); err == nil {
			if err := godotenv.Load(dotenvFile); err != nil {
				return errors.Wrapf(err, "unable to load dotenv file %s", dotenvFile)
			}
		}

		var err error
		userConfig, err = loadConfig(viper.GetString("config"), cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}

		setupLogging(log.StandardLogger(), viper.GetBool("debug"), userConfig.Logging)
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().Bool("debug", false, "debug flag")
	RootCmd.PersistentFlags().String("config", config.DefaultConfigFile, "config file")
	RootCmd.PersistentFlags().String("dotenv", ".env.local", "the dotenv file you want to load")
	cmdutil.PersistentFlags(RootCmd.PersistentFlags())
}

// loadConfig falls back to the defaults when the default config file is missing.
func loadConfig(configFile string, required bool) (*config.Config, error) {
	if _, err := os.Stat(configFile); os.IsNotExist(err) && !required {
		log.Warnf("config file %s not found, using the default config", configFile)
		return config.Default(), nil
	}

	return config.Load(configFile)
}

func setupLogging(logger *log.Logger, debug bool, conf *config.LoggingConfig) {
	logger.SetFormatter(&prefixed.TextFormatter{})

	if debug {
		logger.SetLevel(log.DebugLevel)
	}

	if conf == nil || conf.Directory == "" {
		return
	}

	writer := &lumberjack.Logger{
		Filename:   filepath.Join(conf.Directory, "ladderbot.log"),
		MaxSize:    conf.MaxSize(),
		MaxBackups: conf.MaxBackups,
		LocalTime:  true,
	}

	logger.AddHook(
		lfshook.NewHook(
			lfshook.WriterMap{
				log.DebugLevel: writer,
				log.InfoLevel:  writer,
				log.WarnLevel:  writer,
				log.ErrorLevel: writer,
				log.FatalLevel: writer,
			},
			&log.JSONFormatter{},
		),
	)
}

func Execute() {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Enable environment variable binding, the env vars are not overloaded yet.
	viper.AutomaticEnv()

	// Once the flags are defined, we can bind config keys with flags.
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		log.WithError(err).Errorf("failed to bind persistent flags. please check the flag settings.")
	}

	if err := viper.BindPFlags(RootCmd.Flags()); err != nil {
		log.WithError(err).Errorf("failed to bind local flags. please check the flag settings.")
	}

	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Fatalf("cannot execute command")
	}
}
