/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: infer.go
Description: Infer command implementation. Reads a capture file, prints the field trace
of every captured operation and writes the inferred schema document.
*/

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/kleascm/gqlsniff/pkg/inference"
	"github.com/kleascm/gqlsniff/pkg/logging"
	"github.com/kleascm/gqlsniff/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunInfer infers a schema from a capture file
func RunInfer(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := SetupLogging()
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logger.Close()

	captureFile := viper.GetString("capture_file")
	if len(args) > 0 {
		captureFile = args[0]
	}

	return inferSchema(cmd, logger, captureFile, viper.GetString("output"))
}

// inferSchema runs the engine over captureFile and writes the schema to output
func inferSchema(cmd *cobra.Command, logger *logging.Logger, captureFile, output string) error {
	w := out(cmd)
	if output == "-" && w != io.Discard {
		// Keep stdout clean for the schema document
		w = cmd.ErrOrStderr()
	}
	fmt.Fprintln(w, "🧬 gqlsniff - Schema Inference")
	fmt.Fprintln(w, "==============================")
	fmt.Fprintf(w, "📁 Capture file: %s\n", captureFile)

	if _, err := os.Stat(captureFile); err != nil {
		return fmt.Errorf("capture file not available: %w", err)
	}

	engine := inference.NewEngine(
		inference.WithTrace(w),
		inference.WithLogger(logger.Component("infer")),
	)
	result, err := engine.RunFile(captureFile)
	if err != nil {
		return fmt.Errorf("inference failed: %w", err)
	}

	stats := result.Stats
	logger.LogInference(result.RunID, map[string]interface{}{
		"records":     stats.Records,
		"operations":  stats.Operations,
		"skipped":     stats.Skipped,
		"diagnostics": stats.Diagnostics(),
		"types":       stats.Types,
		"fields":      stats.Fields,
		"duration":    stats.Duration,
	})

	if err := writeSchema(result.Schema, output, cmd.OutOrStdout()); err != nil {
		return err
	}
	if output != "-" {
		logger.LogSchemaWritten(output, stats.Types, stats.Fields)
	}

	if reportDir := viper.GetString("report_dir"); reportDir != "" {
		path, err := utils.WriteRunReport(reportDir, &utils.RunReport{
			RunID:       result.RunID,
			Version:     Version,
			CaptureFile: captureFile,
			SchemaFile:  output,
			Types:       result.Schema.Types(),
			Stats:       stats,
		})
		if err != nil {
			return err
		}
		logger.Info("Run report written", map[string]interface{}{"path": path})
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "📊 %d operations from %d records, %d lines skipped\n", stats.Operations, stats.Records, stats.Skipped)
	fmt.Fprintf(w, "💾 %d types, %d fields -> %s\n", stats.Types, stats.Fields, output)
	return nil
}
