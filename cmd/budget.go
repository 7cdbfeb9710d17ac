package cmd

import (
	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Print the static power budget only",
	Long: "Computes the one-shot power balance (per-bus loads, nominal and EOL power, " +
		"margins, solar excess, analytical charge time) and the routing allocation at " +
		"the initial state of charge, without running a time simulation.",
	RunE: runBudget,
}

func init() {
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()
	rep, err := svc.Budget()
	if err != nil {
		return err
	}
	return svc.Routing(rep.ExcessW)
}
