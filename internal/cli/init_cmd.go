package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbjs97/coal/internal/session"
	"github.com/hbjs97/coal/internal/shell"
)

func (a *App) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "init [bash|zsh|ksh|tcsh]",
		Short:     "Print the shell function that evals coal's output",
		Long:      "Add `eval \"$(coal init zsh)\"` (or your shell) to your shell startup file.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"bash", "zsh", "ksh", "tcsh"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(args)
		},
	}
}

// runInit은 셸 래퍼 함수를 출력한다. 이 출력은 rc 파일에서 eval되므로 Script를 거치지 않는다.
func (a *App) runInit(args []string) error {
	var kind shell.Kind
	if len(args) == 1 {
		k, err := shell.ParseKind(args[0])
		if err != nil {
			return err
		}
		kind = k
	} else {
		snap, err := session.FromEnviron(a.Environ, a.GOOS)
		if err != nil {
			return fmt.Errorf("cli.init: %w", err)
		}
		kind = shell.Resolve(snap.ShellHints())
	}

	snippet := shell.HookSnippet(kind)
	if snippet == "" {
		return fmt.Errorf("cli.init: no shell function for %s", kind)
	}
	_, err := fmt.Fprint(a.stdout(), snippet)
	return err
}
