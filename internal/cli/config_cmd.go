package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/hbjs97/coal/internal/config"
	"github.com/hbjs97/coal/internal/manager"
	"github.com/hbjs97/coal/internal/shell"
)

func (a *App) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the coal config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eval(a.runConfigInit)
		},
	})
	return cmd
}

// runConfigInit은 기본 설정 파일을 만든다. 기존 파일은 덮어쓰지 않는다.
func (a *App) runConfigInit(_ *invocation, out *shell.Script) error {
	_, err := os.Stat(a.CfgPath)
	if err == nil {
		return &manager.Error{
			Msg: fmt.Sprintf("Config file %s already exists.", a.CfgPath),
			Err: ErrConfigExists,
		}
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return &manager.Error{Msg: "Unable to access config file", Err: err}
	}

	if err := config.Save(a.CfgPath, config.Default()); err != nil {
		return &manager.Error{Msg: "Unable to write config file", Err: err}
	}
	out.Add(shell.Echo("Config file created: " + a.CfgPath))
	return nil
}
