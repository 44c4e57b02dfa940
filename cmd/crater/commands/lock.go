package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/crater/internal/app"
)

func (c *CLI) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty lockfile in the directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Init(cmd.Context(), c.dir)
		},
	}
}

func (c *CLI) newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Check out every crate at its locked version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Checkout(cmd.Context(), c.dir)
		},
	}
}

func (c *CLI) newCommitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record the checked-out versions in the lockfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return c.app.Commit(cmd.Context(), c.dir, app.CommitOptions{Force: force})
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Record crates with uncommitted changes")
	return cmd
}

func (c *CLI) newUpgradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upgrade [crate:dependency]",
		Short: "Resolve the newest compatible versions and check them out",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			depsDir, _ := cmd.Flags().GetString("deps-dir")
			opts := app.UpgradeOptions{DepsDir: depsDir}
			if len(args) == 1 {
				opts.Edge = args[0]
			}
			return c.app.Upgrade(cmd.Context(), c.dir, opts)
		},
	}
	cmd.Flags().String("deps-dir", "", "Directory for new crates, relative to the project root")
	return cmd
}

func (c *CLI) newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Refresh the remote state of every crate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Fetch(cmd.Context(), c.dir)
		},
	}
}

func (c *CLI) newGenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen",
		Short: "Regenerate the build glue files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Generate(cmd.Context(), c.dir)
		},
	}
}
