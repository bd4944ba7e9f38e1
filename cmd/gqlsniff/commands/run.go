/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: run.go
Description: Run command implementation. Captures traffic until stopped, then infers the
schema from what was captured. Inference only starts once capture has fully stopped.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunCaptureAndInfer captures traffic and then infers a schema from it
func RunCaptureAndInfer(cmd *cobra.Command, args []string) error {
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

	captureFile, err := captureTraffic(cmd, logger)
	if err != nil {
		return err
	}

	fmt.Fprintln(out(cmd), "\nParsing schema...")
	return inferSchema(cmd, logger, captureFile, viper.GetString("output"))
}
