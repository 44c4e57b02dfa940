package commands

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/crater/internal/app"
	"go.trai.ch/crater/internal/core/domain"
	"go.trai.ch/crater/internal/ui/output"
	"go.trai.ch/crater/internal/ui/style"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Compare every checkout with the lockfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			states, err := c.app.Status(cmd.Context(), c.dir)
			if err != nil {
				return err
			}
			return renderStatus(cmd.OutOrStdout(), states)
		},
	}
}

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the crates of the lockfile with their dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := c.app.List(cmd.Context(), c.dir)
			if err != nil {
				return err
			}
			return renderList(cmd.OutOrStdout(), entries)
		},
	}
}

func newRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ColorProfile())
	return r
}

func renderStatus(w io.Writer, states []app.CrateState) error {
	r := newRenderer(w)
	dim := r.NewStyle().Foreground(style.Slate)
	name := r.NewStyle().Bold(true)

	var b strings.Builder
	for _, st := range states {
		icon, color := stateIcon(st.State)
		b.WriteString(r.NewStyle().Foreground(color).Render(icon))
		b.WriteString(" ")
		b.WriteString(name.Render(displayName(st.Name)))

		switch {
		case st.Remote.Type == domain.SelfType:
		case st.State == app.StateUnlocked:
			b.WriteString(" " + dim.Render(st.State.String()))
		case st.State == app.StateMissing:
			b.WriteString(" " + dim.Render(fmt.Sprintf("%s (locked %s)", st.State, st.Locked.Short())))
		case st.State == app.StateMoved:
			b.WriteString(" " + dim.Render(fmt.Sprintf("%s %s %s", st.Locked.Short(), style.Arrow, st.Current.Version.Short())))
		case st.State == app.StateModified:
			b.WriteString(" " + dim.Render(fmt.Sprintf("%s %s", st.Locked.Short(), st.State)))
		default:
			b.WriteString(" " + dim.Render(st.Locked.Short()))
		}
		b.WriteString("\n")

		if len(st.Unbound) > 0 {
			b.WriteString("  ")
			b.WriteString(r.NewStyle().Foreground(style.Yellow).Render("unbound: " + strings.Join(st.Unbound, ", ")))
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func stateIcon(s app.SyncState) (string, lipgloss.Color) {
	switch s {
	case app.StateClean:
		return style.Check, style.Green
	case app.StateModified:
		return style.Warning, style.Yellow
	case app.StateMoved:
		return style.Tilde, style.Yellow
	case app.StateMissing:
		return style.Cross, style.Red
	default:
		return style.Circle, style.Slate
	}
}

func renderList(w io.Writer, entries []app.ListEntry) error {
	r := newRenderer(w)
	dim := r.NewStyle().Foreground(style.Slate)
	name := r.NewStyle().Bold(true).Foreground(style.Iris)

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(name.Render(displayName(e.Name)))
		if e.Remote.Location != "" {
			b.WriteString(" " + dim.Render(e.Remote.String()+" @ "+e.Version.Short()))
		}
		b.WriteString("\n")

		deps := make([]string, 0, len(e.Deps))
		for dep := range e.Deps {
			deps = append(deps, dep)
		}
		slices.Sort(deps)
		for _, dep := range deps {
			fmt.Fprintf(&b, "  %s %s %s\n", dep, style.Arrow, displayName(e.Deps[dep]))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func displayName(name string) string {
	if name == "" {
		return "."
	}
	return name
}
