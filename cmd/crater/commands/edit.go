package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/crater/internal/app"
)

func (c *CLI) newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Add a dependency edge and lock its target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			branches, _ := cmd.Flags().GetStringSlice("branch")
			typ, _ := cmd.Flags().GetString("type")
			depsDir, _ := cmd.Flags().GetString("deps-dir")
			crate, _ := cmd.Flags().GetString("crate")

			return c.app.Add(cmd.Context(), c.dir, app.AddOptions{
				URL:      args[0],
				Type:     typ,
				Branches: branches,
				Name:     name,
				Crate:    crate,
				DepsDir:  depsDir,
			})
		},
	}
	cmd.Flags().StringP("name", "n", "", "Local dependency name (default: derived from the URL)")
	cmd.Flags().StringSliceP("branch", "b", nil, "Branch to track; repeatable (default: the remote's default branch)")
	cmd.Flags().StringP("type", "t", "git", "Backend type")
	cmd.Flags().String("deps-dir", "", "Directory for new crates, relative to the project root")
	cmd.Flags().String("crate", "", "Crate receiving the dependency (default: the project itself)")
	return cmd
}

func (c *CLI) newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <path>",
		Short: "Remove a crate and every edge pointing at it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			purge, _ := cmd.Flags().GetBool("purge")
			return c.app.Remove(cmd.Context(), c.dir, app.RemoveOptions{Path: args[0], Purge: purge})
		},
	}
	cmd.Flags().Bool("purge", false, "Also delete the checkout from disk")
	return cmd
}
