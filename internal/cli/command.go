package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/topfiles/internal/dirstat"
	"github.com/idelchi/topfiles/internal/integration"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// allowedOutputs lists the supported output formats.
//
//nolint:gochecknoglobals // Config constant
var allowedOutputs = []string{"table", "json", "paths"}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}

// Command builds the root command. Configuration is read from flags, then
// TOPFILES_* environment variables, then a topfiles.{yaml,toml,json} config
// file in $HOME/.config/topfiles or the working directory.
func (c CLI) Command() *cobra.Command {
	var (
		cfgFile     string
		integrate   bool
		config      = viper.New()
		description = heredoc.Doc(`
			topfiles lists the largest files below a directory, largest first.

			Only the requested number of files is kept in memory while scanning, so
			arbitrarily large trees can be analyzed. Unreadable directories and files
			are reported as warnings and skipped; only an unreadable root is fatal.

			Positional Arguments:
			  path    Directory to analyze. Defaults to the current directory.
			  count   Number of files to report. Falls back to --top if missing or not a
			          positive integer.

			The '-i' flag prints a zsh function that pipes the result into 'fzf'.
			Load it with: eval "$(topfiles --init)"
		`)
	)

	cmd := &cobra.Command{
		Use:           "topfiles [path] [count]",
		Short:         "Find the largest files in a directory tree",
		Long:          description,
		Args:          cobra.MaximumNArgs(2), //nolint:mnd // path and count
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if integrate {
				return printIntegration(cmd)
			}

			if err := loadConfig(config, cfgFile); err != nil {
				return err
			}

			options, err := resolveOptions(config, args)
			if err != nil {
				return err
			}

			return logic(options, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.IntP("top", "t", dirstat.DefaultTopN, "Number of largest files to display")
	flags.StringP("output", "o", "table", "Output format: table, json or paths")
	flags.StringSliceP(
		"ext",
		"x",
		[]string{},
		"File suffixes to include (e.g., .go,.md). Use '!' prefix to exclude (e.g., !.log,!_test.go)",
	)
	flags.StringSliceP("exclude", "e", []string{}, `Regex patterns to exclude (e.g., '.*\.git/.*')`)
	flags.String("min-size", "0B", "Minimum file size (e.g., 1MB)")
	flags.IntP("depth", "d", 0, "Maximum traversal depth (0=unlimited)")
	flags.Bool("debug", false, "Enable debug output")
	flags.BoolVarP(&integrate, "init", "i", false, "Output init script for shell usage")
	flags.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.config/topfiles/topfiles.yaml)")

	for key, flag := range map[string]string{
		"top":      "top",
		"output":   "output",
		"ext":      "ext",
		"exclude":  "exclude",
		"min_size": "min-size",
		"depth":    "depth",
		"debug":    "debug",
	} {
		cobra.CheckErr(config.BindPFlag(key, flags.Lookup(flag)))
	}

	return cmd
}

// loadConfig wires environment variables and reads the config file, if any.
// A missing config file is only an error when one was requested explicitly.
func loadConfig(config *viper.Viper, cfgFile string) error {
	config.SetEnvPrefix("TOPFILES")
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	config.AutomaticEnv()

	if cfgFile != "" {
		config.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			config.AddConfigPath(filepath.Join(home, ".config", "topfiles"))
		}

		config.AddConfigPath(".")
		config.SetConfigName("topfiles")
	}

	if err := config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("reading config: %w", err)
	}

	return nil
}

// resolveOptions turns configuration and positional arguments into scan options.
func resolveOptions(config *viper.Viper, args []string) (dirstat.Options, error) {
	options := dirstat.Options{
		Path:       ".",
		TopN:       config.GetInt("top"),
		Output:     strings.ToLower(config.GetString("output")),
		Extensions: config.GetStringSlice("ext"),
		Excludes:   config.GetStringSlice("exclude"),
		Depth:      config.GetInt("depth"),
		Debug:      config.GetBool("debug"),
	}

	if len(args) > 0 {
		options.Path = args[0]
	}

	if len(args) > 1 {
		options.TopN = parseCount(args[1], options.TopN)
	}

	if !slices.Contains(allowedOutputs, options.Output) {
		return options, fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
	}

	if options.Depth < 0 {
		return options, errors.New("depth cannot be negative")
	}

	// Parse minSize string to bytes
	if minSizeStr := config.GetString("min_size"); minSizeStr != "" {
		size, err := humanize.ParseBytes(minSizeStr)
		if err != nil {
			return options, fmt.Errorf("invalid min-size: %w", err)
		}

		options.MinSize = int64(size) //nolint:gosec // Size conversion from humanize is safe
	}

	return options, nil
}

// parseCount returns s as a positive integer, or fallback if it is not one.
func parseCount(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fallback
	}

	return n
}

// printIntegration writes the shell integration snippet for the running binary.
func printIntegration(cmd *cobra.Command) error {
	binary, err := os.Executable()
	if err != nil {
		binary = cmd.Root().Name()
	}

	rendered, err := integration.Render(binary)
	if err != nil {
		return fmt.Errorf("rendering integration script: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)

	return err
}
