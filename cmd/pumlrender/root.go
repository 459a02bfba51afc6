package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pumlrender/internal/config"
	"pumlrender/internal/logging"
	"pumlrender/internal/render"
)

type rootFlags struct {
	configPath         string
	serverURL          string
	format             string
	timeoutSeconds     int
	maxRetries         int
	retryInvalidSyntax bool
	verbose            bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:           "pumlrender <diagram.puml> [diagram.puml ...]",
		Short:         "Render PlantUML diagram sources through a remote rendering server",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return runRender(cmd, logger, renderOptions(cfg), args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	pf.StringVar(&flags.serverURL, "server", defaults.Server.URL, "Rendering server root URL")
	pf.StringVar(&flags.format, "format", defaults.Server.Format, "Artifact format: png, svg, or txt")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose diagnostic output")

	rootCmd.Flags().IntVar(&flags.timeoutSeconds, "timeout", defaults.Transport.TimeoutSeconds, "Per-request timeout in seconds")
	rootCmd.Flags().IntVar(&flags.maxRetries, "max-retries", defaults.Transport.MaxRetries, "Retries after the first failed request")
	rootCmd.Flags().BoolVar(&flags.retryInvalidSyntax, "retry-invalid-syntax", defaults.Transport.RetryInvalidSyntax, "Retry HTTP 400 responses like transient failures")

	rootCmd.AddCommand(newEncodeCommand(flags))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// resolve merges the configuration file (when --config was given) with
// explicit flag overrides and builds the logger. Flags win over the file.
func (f *rootFlags) resolve(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, nil, err
	}

	flagSet := cmd.Flags()
	if flagSet.Changed("server") {
		cfg.Server.URL = strings.TrimRight(strings.TrimSpace(f.serverURL), "/")
	}
	if flagSet.Changed("format") {
		cfg.Server.Format = strings.ToLower(strings.TrimSpace(f.format))
	}
	if flagSet.Changed("timeout") {
		cfg.Transport.TimeoutSeconds = f.timeoutSeconds
	}
	if flagSet.Changed("max-retries") {
		cfg.Transport.MaxRetries = f.maxRetries
	}
	if flagSet.Changed("retry-invalid-syntax") {
		cfg.Transport.RetryInvalidSyntax = f.retryInvalidSyntax
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level := cfg.Logging.Level
	if f.verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		Level:  level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func renderOptions(cfg *config.Config) render.Options {
	return render.Options{
		ServerURL:          cfg.Server.URL,
		Format:             cfg.Server.Format,
		Timeout:            time.Duration(cfg.Transport.TimeoutSeconds) * time.Second,
		MaxRetries:         cfg.Transport.MaxRetries,
		RetryInvalidSyntax: cfg.Transport.RetryInvalidSyntax,
	}
}

func runRender(cmd *cobra.Command, logger *slog.Logger, opts render.Options, sources []string) error {
	renderer := render.NewRenderer(opts, logger)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(sources) == 1 {
		result, err := renderer.Render(ctx, sources[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated diagram: %s\n", result.OutputPath)
		return nil
	}

	var firstErr error
	rows := make([][]string, 0, len(sources))
	for _, source := range sources {
		result, err := renderer.Render(ctx, source)
		if err != nil {
			rows = append(rows, []string{source, "failed", err.Error()})
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		rows = append(rows, []string{source, "ok", fmt.Sprintf("%s (%d bytes)", result.OutputPath, result.Bytes)})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Source", "Status", "Result"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	))
	return firstErr
}
