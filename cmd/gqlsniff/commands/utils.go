/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for gqlsniff commands. Configuration loading, logging setup,
interactive prompts and schema file output used across the command implementations.
*/

package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kleascm/gqlsniff/pkg/inference"
	"github.com/kleascm/gqlsniff/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	viper.SetEnvPrefix("GQLSNIFF")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

// SetupLogging builds the logger from configuration
func SetupLogging() (*logging.Logger, error) {
	config := &logging.LoggerConfig{
		Level:     logging.LogLevel(viper.GetString("log_level")),
		Format:    logging.LogFormat(viper.GetString("log_format")),
		OutputDir: viper.GetString("log_dir"),
		MaxFiles:  viper.GetInt("log_max_files"),
		Timestamp: true,
		Colors:    viper.GetBool("log_colors"),
	}
	if config.MaxFiles <= 0 {
		config.MaxFiles = 10
	}

	logger, err := logging.NewLogger(config)
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// bindFlags binds a command's flags to viper keys. Flags shared by several
// commands are bound when the command runs so the running command wins.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) error {
	for key, flag := range keys {
		if f := flags.Lookup(flag); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", flag, err)
			}
		}
	}
	return nil
}

// out returns the writer for human-readable command output
func out(cmd *cobra.Command) io.Writer {
	if viper.GetBool("quiet") {
		return io.Discard
	}
	return cmd.OutOrStdout()
}

// signalContext returns a context cancelled on SIGINT/SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// waitForEnter cancels when a line is read from in
func waitForEnter(in io.Reader, cancel context.CancelFunc) {
	go func() {
		reader := bufio.NewReader(in)
		_, _ = reader.ReadString('\n')
		cancel()
	}()
}

// promptLine asks a question on w and reads one trimmed answer from in
func promptLine(w io.Writer, in io.Reader, question string) (string, error) {
	fmt.Fprint(w, question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// writeSchema writes the SDL document to path, or to w when path is "-"
func writeSchema(schema *inference.Schema, path string, w io.Writer) error {
	if path == "-" {
		return schema.WriteSDL(w)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create schema file: %w", err)
	}
	if err := schema.WriteSDL(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return file.Close()
}
