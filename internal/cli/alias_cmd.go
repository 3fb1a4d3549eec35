package cli

import (
	"github.com/spf13/cobra"

	"github.com/hbjs97/coal/internal/shell"
)

func (a *App) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <alias> <command>",
		Short: "Add an alias to the active container",
		Example: `  coal add gs "git status"
  coal add -- ll "ls -la"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eval(func(inv *invocation, out *shell.Script) error {
				return inv.mgr.Add(out, inv.snap, args[0], args[1])
			})
		},
	}
}

func (a *App) newRemCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rem <alias>",
		Aliases: []string{"remove"},
		Short:   "Remove an alias from the active container",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eval(func(inv *invocation, out *shell.Script) error {
				return inv.mgr.Remove(out, inv.snap, args[0])
			})
		},
	}
}
