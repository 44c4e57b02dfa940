// Package commands implements the CLI commands for crater.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/crater/internal/app"
	"go.trai.ch/crater/internal/build"
)

// CLI represents the command line interface for crater.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	dir     string
	json    bool
	setJSON func(bool)
}

// Application represents the application logic interface.
type Application interface {
	Init(ctx context.Context, dir string) error
	Checkout(ctx context.Context, dir string) error
	Commit(ctx context.Context, dir string, opts app.CommitOptions) error
	Status(ctx context.Context, dir string) ([]app.CrateState, error)
	Add(ctx context.Context, dir string, opts app.AddOptions) error
	Remove(ctx context.Context, dir string, opts app.RemoveOptions) error
	List(ctx context.Context, dir string) ([]app.ListEntry, error)
	Upgrade(ctx context.Context, dir string, opts app.UpgradeOptions) error
	Fetch(ctx context.Context, dir string) error
	Generate(ctx context.Context, dir string) error
}

// Option configures the CLI.
type Option func(*CLI)

// WithJSONLogs registers the callback switching the logger to JSON output for --json.
func WithJSONLogs(set func(bool)) Option {
	return func(c *CLI) {
		c.setJSON = set
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "crater",
		Short:         "A source-level dependency manager",
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

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentFlags().StringVarP(&c.dir, "dir", "C", ".", "Directory inside the project; the root is the nearest directory with a lockfile")
	rootCmd.PersistentFlags().BoolVar(&c.json, "json", false, "Write logs as JSON")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.setJSON != nil {
			c.setJSON(c.json)
		}
	}

	rootCmd.AddCommand(c.newInitCmd())
	rootCmd.AddCommand(c.newCheckoutCmd())
	rootCmd.AddCommand(c.newCommitCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newAddCmd())
	rootCmd.AddCommand(c.newRemoveCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newUpgradeCmd())
	rootCmd.AddCommand(c.newFetchCmd())
	rootCmd.AddCommand(c.newGenCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
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
