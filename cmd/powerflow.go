package cmd

import (
	"github.com/spf13/cobra"
)

var powerflowCmd = &cobra.Command{
	Use:   "powerflow",
	Short: "Run the coupled EPS power flow simulation",
	Long: "Simulates the full per-timestep power flow: solar generation serves the " +
		"avionics EOL load, the surplus is routed with battery charging capped by " +
		"per-step headroom, and the remainder is dissipated in the shunt.",
	RunE: runPowerFlow,
}

func init() {
	rootCmd.AddCommand(powerflowCmd)
}

func runPowerFlow(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()
	return svc.PowerFlow()
}
