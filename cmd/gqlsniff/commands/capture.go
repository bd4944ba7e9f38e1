/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: capture.go
Description: Capture command implementation. Opens a browser, records every JSON request
body sent to the target domain into the capture file and stops on Enter or a signal.
*/

package commands

import (
	"context"
	"fmt"

	"github.com/kleascm/gqlsniff/pkg/capture"
	"github.com/kleascm/gqlsniff/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// captureFlagKeys maps viper keys to the capture flags
var captureFlagKeys = map[string]string{
	"domain":      "domain",
	"start_url":   "start-url",
	"headless":    "headless",
	"chrome_path": "chrome-path",
	"user_agent":  "user-agent",
}

// addCaptureFlags registers the capture flags on a command
func addCaptureFlags(cmd *cobra.Command) {
	cmd.Flags().String("domain", "", "Record requests whose host ends with this domain")
	cmd.Flags().String("start-url", "", "Page to open when the browser starts")
	cmd.Flags().Bool("headless", false, "Run the browser without a window")
	cmd.Flags().String("chrome-path", "", "Chrome/Chromium binary (default: auto-detect)")
	cmd.Flags().String("user-agent", "", "Override the browser user agent")
}

// RunCapture records traffic until interrupted
func RunCapture(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd.Flags(), captureFlagKeys); err != nil {
		return err
	}
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := SetupLogging()
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logger.Close()

	_, err = captureTraffic(cmd, logger)
	return err
}

// captureTraffic runs one capture session and returns the capture file path
func captureTraffic(cmd *cobra.Command, logger *logging.Logger) (string, error) {
	w := out(cmd)
	fmt.Fprintln(w, "🕸️  gqlsniff - Traffic Capture")
	fmt.Fprintln(w, "==============================")

	domain := viper.GetString("domain")
	if domain == "" {
		answer, err := promptLine(cmd.OutOrStdout(), cmd.InOrStdin(), "Enter domain to capture: ")
		if err != nil {
			return "", err
		}
		domain = answer
	}
	if domain == "" {
		return "", fmt.Errorf("a target domain is required")
	}

	captureFile := viper.GetString("capture_file")
	recorder, err := capture.NewRecorder(captureFile)
	if err != nil {
		return "", err
	}
	defer recorder.Close()

	session := capture.NewBrowserSession(&capture.BrowserConfig{
		StartURL:  viper.GetString("start_url"),
		Headless:  viper.GetBool("headless"),
		ExecPath:  viper.GetString("chrome_path"),
		UserAgent: viper.GetString("user_agent"),
	}, capture.NewFilter(domain), recorder, logger.Component("capture"))

	ctx, stop := signalContext(context.Background())
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintf(w, "🎯 Capturing JSON requests to: %s\n", domain)
	fmt.Fprintln(w, "\n*** Press ENTER to stop capturing. ***")
	waitForEnter(cmd.InOrStdin(), cancel)

	logger.LogCaptureStarted(domain, captureFile)
	if err := session.Run(ctx); err != nil {
		return "", fmt.Errorf("capture failed: %w", err)
	}
	logger.LogCaptureStopped(captureFile, recorder.Count())

	if err := recorder.Close(); err != nil {
		return "", fmt.Errorf("failed to close capture file: %w", err)
	}

	fmt.Fprintf(w, "✅ %d requests saved to %s\n", recorder.Count(), captureFile)
	return captureFile, nil
}
