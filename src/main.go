package main

import (
	"os"

	"budget-planner/src/cmd"
	"budget-planner/src/logger"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log := logger.New("info")
		log.Error().Err(err).Msg("budget-planner failed")
		os.Exit(1)
	}
}
