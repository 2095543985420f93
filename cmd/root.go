package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/photoframe/photoframe/core/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "photoframe",
	Short: "Cloud backend for an internet-connected photo frame",
	Long: `Serves a random picture to the frame behind a shared-secret token and
watches the frame's connectivity, alerting operators when it stays offline.`,
	SilenceUsage: true,
}

func init() {
	time.Local = time.UTC
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	// Assigned here because initConfig reads rootCmd's flags.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return initConfig()
	}
	initFlags()
}

func initFlags() {
	rootCmd.PersistentFlags().String("log-level", "", "log level | example: --log-level=debug")
	rootCmd.PersistentFlags().StringP("port", "p", "", "port for the rest server | example: --port=8080")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "enable request logging and verbose database logs")
	rootCmd.PersistentFlags().StringSliceP("basic-auth", "b", nil, "operator credentials | -b=user:secret")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before reading the environment")

	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("app_port", rootCmd.PersistentFlags().Lookup("port"))
	_ = viper.BindPFlag("app_debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("app_basic_auth", rootCmd.PersistentFlags().Lookup("basic-auth"))
	_ = viper.BindPFlag("env_file", rootCmd.PersistentFlags().Lookup("env-file"))
}

// initConfig loads .env, builds config.Global from the environment and lets
// explicitly passed flags win.
func initConfig() error {
	if err := godotenv.Load(viper.GetString("env_file")); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("[CONFIG] Failed to load env file")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	flags := rootCmd.PersistentFlags()
	if flags.Changed("log-level") {
		cfg.App.LogLevel = viper.GetString("log_level")
	}
	if flags.Changed("port") {
		cfg.App.Port = viper.GetString("app_port")
	}
	if flags.Changed("debug") {
		cfg.App.Debug = viper.GetBool("app_debug")
	}
	if flags.Changed("basic-auth") {
		cfg.App.BasicAuth = viper.GetStringSlice("app_basic_auth")
	}

	setupLogging(cfg)
	logrus.WithFields(logrus.Fields(config.GetAllSettings())).Debug("[CONFIG] Settings loaded")
	return nil
}

func setupLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(strings.ToLower(cfg.App.LogLevel))
	if err != nil {
		logrus.Warnf("[CONFIG] Unknown LOG_LEVEL %q, using info", cfg.App.LogLevel)
		level = logrus.InfoLevel
	}
	if cfg.App.Debug && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
