package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "acars",
	Short: "SkyOps ACARS client",
	Long: `Connects to the simulator bridge, tracks the flight session and
files the pilot report with the crew center when the flight ends.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
