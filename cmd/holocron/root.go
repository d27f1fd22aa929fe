package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kerbaras/holocron/pkg/app"
	"github.com/kerbaras/holocron/pkg/config"
	"github.com/kerbaras/holocron/pkg/data"
	"github.com/kerbaras/holocron/pkg/services"
	"github.com/kerbaras/holocron/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	v          = viper.New()
	cfg        *config.Config
	logger     *slog.Logger
	logFile    *os.File
	controller *services.Controller
)

var rootCmd = &cobra.Command{
	Use:   "holocron",
	Short: "A Star Wars archive in your terminal",
	Long:  "Browse films, people, planets, species, starships and vehicles from SWAPI with a TUI and CLI",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		teardown()
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Launch TUI by default
		a := app.NewApp(controller)
		if err := a.Run(cmd.Context()); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ~/.holocron/config.yaml)")
	flags.String("base-url", "", "API base URL")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Duration("timeout", 0, "HTTP request timeout")

	cobra.CheckErr(v.BindPFlag("base_url", flags.Lookup("base-url")))
	cobra.CheckErr(v.BindPFlag("log_level", flags.Lookup("log-level")))
	cobra.CheckErr(v.BindPFlag("timeout", flags.Lookup("timeout")))

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(exportCmd)
}

func setup(cmd *cobra.Command) error {
	var err error
	cfg, err = config.LoadWith(v, cfgFile)
	if err != nil {
		return err
	}

	level := utils.LevelFromString(cfg.LogLevel)
	logFile = nil
	if !cmd.HasParent() {
		// The TUI owns the terminal, so logs go to a file.
		logger, logFile, err = utils.NewFileLogger(cfg.LogFile, level)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
	} else {
		logger = utils.NewLogger(os.Stderr, level)
	}
	slog.SetDefault(logger)

	controller = services.NewController(cfg, logger)
	return nil
}

func teardown() {
	if controller != nil {
		if err := controller.Close(); err != nil {
			logger.Warn("failed to close library", "error", err)
		}
	}
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func parseKind(s string) data.Kind {
	kind, err := data.ParseKind(s)
	cobra.CheckErr(err)
	return kind
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
