package main

import (
	"os"

	"github.com/chetan0021/spacecraft-eps-power-budget/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
