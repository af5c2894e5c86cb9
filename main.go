package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"loan-eligibility/app"
	"loan-eligibility/config"
)

var (
	cfgFile  string
	logLevel string
	version  = "dev"

	conf   *config.Configuration
	logger *zap.Logger

	rootCmd = &cobra.Command{
		Use:   "loancalc",
		Short: "Loan eligibility calculator",
		Long: `loancalc validates loan applications, computes the monthly installment (EMI)
at a fixed 10% annual rate, assigns a risk category and stores eligible
applications. Admins can list, summarise and delete stored records.`,
		PersistentPreRunE: initConfig,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./loancalc.yaml or $HOME/.config/loancalc/loancalc.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(applyCmd())
	rootCmd.AddCommand(recordsCmd())
	rootCmd.AddCommand(hashPasswordCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	conf = loaded

	logger, err = config.NewLogger(conf.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// openApp wires the stores and services for one command invocation.
func openApp(ctx context.Context) (*app.App, error) {
	a, err := app.New(ctx, conf, logger)
	if err != nil {
		logger.Error("failed to initialize application",
			zap.String("op", "main.openApp"),
			zap.Error(err),
		)
		return nil, err
	}
	return a, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "loancalc %s\n", version)
		},
	}
}
