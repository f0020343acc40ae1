// Package commands implements the CLI commands for pathcache.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/pathcache/internal/adapters/telemetry"
	"go.trai.ch/pathcache/internal/app"
	"go.trai.ch/pathcache/internal/build"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for pathcache.
type CLI struct {
	app      Application
	settings LogSettings
	rootCmd  *cobra.Command

	shutdown func(context.Context) error
	trace    io.Closer
}

// Application represents the application logic interface.
type Application interface {
	Replay(ctx context.Context, path string, opts app.ReplayOptions) error
	Inspect(ctx context.Context, path string, out io.Writer) error
}

// LogSettings is implemented by loggers whose format can be changed from
// the command line.
type LogSettings interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// New creates a new CLI instance with the given app. settings may be nil.
func New(a Application, settings LogSettings) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pathcache",
		Short:         "Replay scenarios against an incremental path cache",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Include debug logs")
	rootCmd.PersistentFlags().String("trace-file", "", "Write OpenTelemetry spans as JSON to this file")

	c := &CLI{
		app:      a,
		settings: settings,
		rootCmd:  rootCmd,
	}
	rootCmd.PersistentPreRunE = c.configure

	rootCmd.AddCommand(c.newReplayCmd())
	rootCmd.AddCommand(c.newInspectCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	err := c.rootCmd.Execute()
	if closeErr := c.close(ctx); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// configure applies the persistent flags before any subcommand runs.
func (c *CLI) configure(cmd *cobra.Command, _ []string) error {
	jsonLogs, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")
	traceFile, _ := cmd.Flags().GetString("trace-file")

	if c.settings != nil {
		c.settings.SetJSON(jsonLogs)
		c.settings.SetVerbose(verbose)
	}

	if traceFile == "" {
		return nil
	}
	f, err := os.Create(traceFile)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create trace file"), "file", traceFile)
	}
	shutdown, err := telemetry.Install(f, build.Version)
	if err != nil {
		_ = f.Close()
		return err
	}
	c.trace = f
	c.shutdown = shutdown
	return nil
}

// close flushes exported spans and closes the trace file.
func (c *CLI) close(ctx context.Context) error {
	if c.shutdown == nil {
		return nil
	}
	err := c.shutdown(context.WithoutCancel(ctx))
	if closeErr := c.trace.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	c.shutdown, c.trace = nil, nil
	return err
}
