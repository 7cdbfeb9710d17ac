// Package cmd holds the eps-budget CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chetan0021/spacecraft-eps-power-budget/app"
	"github.com/chetan0021/spacecraft-eps-power-budget/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "eps-budget",
	Short: "Spacecraft EPS power budget and battery simulation",
	Long: "Computes the static EPS power balance (bus loads, EOL degradation, margin, " +
		"solar excess) and simulates battery charging with rule-based power routing.",
	RunE: runCharge,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json); built-in reference constants when omitted")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig resolves the effective configuration: the file named by --config
// if given, otherwise the built-in reference constants.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newService() (*app.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}

func runCharge(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()
	return svc.Charge()
}
