package main

import (
	"bufio"
	"context"
	"net"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"skyops/acars"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Track the flight session against a simulator bridge",
	Long: `Reads newline-delimited JSON messages from the bridge socket,
maintains the session state and submits the pilot report once the
bridge signals the flight has ended.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		var log = logrus.New()
		log.Formatter = new(logrus.TextFormatter)
		log.Formatter.(*logrus.TextFormatter).DisableColors = true
		log.Out = os.Stdout

		bridgeAddr, errBridge := cmd.Flags().GetString("bridge")
		if errBridge != nil {
			log.WithContext(ctx).WithFields(logrus.Fields{
				"Error": errBridge,
			}).Error("Error in fetching flag 'bridge'")
			os.Exit(1)
		}
		apiURL, errApi := cmd.Flags().GetString("api")
		if errApi != nil {
			log.WithContext(ctx).WithFields(logrus.Fields{
				"Error": errApi,
			}).Error("Error in fetching flag 'api'")
			os.Exit(1)
		}
		appKey, errKey := cmd.Flags().GetString("app-key")
		if errKey != nil {
			log.WithContext(ctx).WithFields(logrus.Fields{
				"Error": errKey,
			}).Error("Error in fetching flag 'app-key'")
			os.Exit(1)
		}
		version, errVersion := cmd.Flags().GetString("version-tag")
		if errVersion != nil {
			log.WithContext(ctx).WithFields(logrus.Fields{
				"Error": errVersion,
			}).Error("Error in fetching flag 'version-tag'")
			os.Exit(1)
		}

		if err := run(ctx, log, bridgeAddr, apiURL, appKey, version); err != nil {
			log.WithContext(ctx).WithFields(logrus.Fields{
				"Error": err,
			}).Error("Error in session processing")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().String("bridge", "127.0.0.1:8765", "simulator bridge address")
	startCmd.Flags().String("api", "http://localhost:8080", "crew center base url")
	startCmd.Flags().String("app-key", "", "shared signing key for pilot reports")
	startCmd.Flags().String("version-tag", "dev", "client version reported with each pirep")
}

func run(ctx context.Context, log *logrus.Logger, bridgeAddr string, apiURL string, appKey string, version string) error {
	conn, err := net.Dial("tcp", bridgeAddr)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.WithField("bridge", bridgeAddr).Info("connected to simulator bridge")

	api := acars.NewApiClient(apiURL, appKey)
	session := acars.NewSession(acars.NoopBridge{})
	session.OnFlightComplete = func(snap acars.Snapshot) {
		sub := acars.BuildSubmission(snap, version)
		submitCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()

		resp, err := api.SubmitPirep(submitCtx, sub)
		if err != nil {
			log.WithFields(logrus.Fields{
				"Error":    err,
				"callsign": sub.Callsign,
			}).Error("unable to file pilot report")
			return
		}
		log.WithFields(logrus.Fields{
			"callsign": sub.Callsign,
			"credits":  resp.CreditsEarned,
			"message":  resp.Message,
		}).Info("pilot report settled")
	}

	router := acars.NewRouter(session.Handle)
	defer router.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		router.Dispatch(scanner.Bytes())
	}
	return scanner.Err()
}
