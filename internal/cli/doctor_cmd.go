package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbjs97/coal/internal/doctor"
	"github.com/hbjs97/coal/internal/setup"
	"github.com/hbjs97/coal/internal/shell"
)

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the coal installation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 설정 파일이 깨져 있어도 진단은 계속한다
			return a.run(true, a.runDoctor)
		},
	}
}

func (a *App) runDoctor(inv *invocation, out *shell.Script) error {
	results := doctor.RunAll(doctor.Inputs{
		Store:      inv.store,
		ConfigPath: a.CfgPath,
		Session:    inv.snap,
		RCPath:     setup.ShellRCPath(a.Home, inv.kind),
	})
	printDiagResults(out, results)
	return nil
}

// printDiagResults는 진단 결과마다 echo 구문을 추가한다.
func printDiagResults(out *shell.Script, results []doctor.DiagResult) {
	for _, r := range results {
		out.Add(shell.Echo(fmt.Sprintf("[%s] %s: %s", r.Status, r.Name, r.Message)))
		if r.Fix != "" {
			out.Add(shell.Echo("      Fix: " + r.Fix))
		}
	}
}
