package cli

import (
	"github.com/spf13/cobra"

	"github.com/hbjs97/coal/internal/shell"
)

func (a *App) newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Create a container and load it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eval(func(inv *invocation, out *shell.Script) error {
				return inv.mgr.New(out, inv.snap, args[0])
			})
		},
	}
}

func (a *App) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a container, unloading it first if active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eval(func(inv *invocation, out *shell.Script) error {
				return inv.mgr.Delete(out, inv.snap, args[0])
			})
		},
	}
}

func (a *App) newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <name>",
		Short: "Switch the active container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eval(func(inv *invocation, out *shell.Script) error {
				return inv.mgr.Load(out, inv.snap, args[0])
			})
		},
	}
}

func (a *App) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "List containers, or the aliases of one container",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eval(func(inv *invocation, out *shell.Script) error {
				if len(args) == 0 {
					return inv.mgr.ShowAll(out, inv.snap)
				}
				return inv.mgr.ShowAliases(out, args[0])
			})
		},
	}
}
