package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/andiescott-hub/personal-finance-calculator/internal/config"
	"github.com/andiescott-hub/personal-finance-calculator/internal/domain"
	"github.com/andiescott-hub/personal-finance-calculator/internal/logging"
	"github.com/andiescott-hub/personal-finance-calculator/internal/market"
	"github.com/andiescott-hub/personal-finance-calculator/internal/output"
	"github.com/andiescott-hub/personal-finance-calculator/internal/server"
	"github.com/andiescott-hub/personal-finance-calculator/internal/store"
)

var (
	configFile string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "forecast",
		Short: "Household financial forecasting calculator",
		Long: `Projects a two-earner household's income, tax, superannuation, expenses
and net worth year by year to age 80, under Australian tax and super rules.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to configuration YAML")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newRunCmd(), newServeCmd(), newExampleCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() (*zap.SugaredLogger, error) {
	logger, err := logging.NewLogger(verbose)
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func newRunCmd() *cobra.Command {
	var format string
	var outFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the forecast and print or save a report",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			report, err := output.NewReport(cfg, logging.ZapLogger{S: logger})
			if err != nil {
				return err
			}

			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown format %q (available: %v)", format, output.AvailableFormatterNames())
			}

			if outFile != "" {
				data, err := formatter.Format(report)
				if err != nil {
					return err
				}
				if err := os.WriteFile(outFile, data, 0644); err != nil {
					return err
				}
				logger.Infow("report written", "file", outFile, "format", formatter.Name())
				return nil
			}

			data, err := formatter.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, csv, json)")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "write report to file instead of stdout")
	return cmd
}

func newServeCmd() *cobra.Command {
	var addr string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the forecast API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var st *store.Store
			if dbPath != "" {
				st, err = store.Open(dbPath)
				if err != nil {
					return err
				}
				defer st.Close()
			}

			h := server.NewHandler(st, market.NewClient(), cfg, logger)
			return server.ListenAndServe(addr, h)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	cmd.Flags().StringVar(&dbPath, "db", "forecast.db", "path to snapshot database (empty to disable persistence)")
	return cmd
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print an example configuration YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(config.ExampleConfig())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// loadConfig loads the configured file, or falls back to the built-in
// example configuration when none is given.
func loadConfig() (*domain.ForecastConfig, error) {
	parser := config.NewParser()
	if configFile == "" {
		cfg := config.ExampleConfig()
		parser.Normalize(cfg)
		return cfg, nil
	}
	return parser.LoadFromFile(configFile)
}
