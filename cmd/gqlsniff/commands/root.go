/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: root.go
Description: Root command construction for gqlsniff. Declares the persistent flags,
binds them to viper and wires the capture, infer, run and version subcommands.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version of the gqlsniff binary
const Version = "1.0.0"

// NewRootCommand builds the gqlsniff command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gqlsniff",
		Short: "gqlsniff - GraphQL schema inference from captured traffic",
		Long: `gqlsniff records the GraphQL requests a web application sends and reconstructs
an approximate schema from the query documents alone. No introspection endpoint or
real schema is ever consulted.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags
	rootCmd.PersistentFlags().String("config", "", "Configuration file path")
	rootCmd.PersistentFlags().String("log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().String("log-dir", "", "Log output directory (empty: console only)")
	rootCmd.PersistentFlags().Int("log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().Bool("log-colors", true, "Colorize custom log output")
	rootCmd.PersistentFlags().String("capture-file", "queries.json", "Capture file (one JSON request body per line)")
	rootCmd.PersistentFlags().String("output", "schema.graphql", "Schema output file (- for stdout)")
	rootCmd.PersistentFlags().String("report-dir", "", "Directory for JSON run reports (empty: none)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress the field trace and banners")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("log_colors", rootCmd.PersistentFlags().Lookup("log-colors"))
	viper.BindPFlag("capture_file", rootCmd.PersistentFlags().Lookup("capture-file"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("report_dir", rootCmd.PersistentFlags().Lookup("report-dir"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))

	// Add infer command
	inferCmd := &cobra.Command{
		Use:   "infer [capture-file]",
		Short: "Infer a schema from a capture file",
		Long: `Read a capture file, print the fields of every captured operation and write the
inferred schema document. Malformed lines are reported and skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: RunInfer,
	}

	// Add capture command
	captureCmd := &cobra.Command{
		Use:   "capture",
		Short: "Record JSON requests sent to a domain",
		Long: `Open a browser and append every JSON request body sent to the target domain
to the capture file. Press ENTER or send SIGINT to stop.`,
		RunE: RunCapture,
	}
	addCaptureFlags(captureCmd)

	// Add run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Capture traffic, then infer a schema from it",
		RunE:  RunCaptureAndInfer,
	}
	addCaptureFlags(runCmd)

	// Add version command
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the gqlsniff version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gqlsniff %s\n", Version)
		},
	}

	rootCmd.AddCommand(inferCmd, captureCmd, runCmd, versionCmd)
	return rootCmd
}
