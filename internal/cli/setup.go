package cli

import (
	"github.com/spf13/cobra"

	"github.com/hbjs97/coal/internal/setup"
	"github.com/hbjs97/coal/internal/shell"
)

func (a *App) newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the config file and install the shell hook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eval(a.runSetup)
		},
	}
}

// runSetup은 대화형 setup을 실행한다. 프롬프트와 안내는 stderr로 나간다.
func (a *App) runSetup(inv *invocation, _ *shell.Script) error {
	runner := &setup.Runner{
		CfgPath:    a.CfgPath,
		Home:       a.Home,
		Shell:      inv.kind,
		Store:      inv.store,
		Session:    inv.snap,
		FormRunner: a.formRunner(),
		Out:        a.stderr(),
	}
	return runner.Run()
}

func (a *App) formRunner() setup.FormRunner {
	if a.FormRunner == nil {
		return &setup.HuhFormRunner{Output: a.stderr()}
	}
	return a.FormRunner
}
