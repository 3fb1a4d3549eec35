// Package cli wires coal's cobra command tree. Every command except init
// writes a single line of shell statements to stdout for the wrapper
// function to eval; help, usage errors and logs go to stderr.
package cli

import (
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/hbjs97/coal/internal/config"
	"github.com/hbjs97/coal/internal/setup"
	"github.com/hbjs97/coal/internal/shell"
)

// Version은 빌드 시 -ldflags로 덮어쓴다.
var Version = "dev"

// App은 CLI 실행에 필요한 의존성이다. 테스트는 필드를 직접 채운다.
type App struct {
	CfgPath string
	Verbose bool
	// Home은 사용자 홈 디렉토리다. 비어 있으면 COAL_HOME이나 root_dir이 필요하다.
	Home string
	// GOOS는 셸 감지에 쓰이는 플랫폼 이름이다.
	GOOS string
	// Environ은 부모 셸에서 물려받은 환경변수다. 프로세스 환경은 NewApp에서 한 번만 읽는다.
	Environ    map[string]string
	Stdout     io.Writer
	Stderr     io.Writer
	FormRunner setup.FormRunner
	Version    string

	logger *slog.Logger
}

// NewApp은 프로세스 환경으로 App을 만든다.
func NewApp() *App {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return &App{
		Home:       home,
		GOOS:       runtime.GOOS,
		Environ:    env.ToMap(os.Environ()),
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		FormRunner: &setup.HuhFormRunner{Output: os.Stderr},
		Version:    Version,
	}
}

// NewRootCmd는 coal CLI의 루트 명령을 생성한다.
func (a *App) NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coal",
		Short: "Switchable containers of shell aliases",
		Long: `coal keeps named sets of shell aliases and switches between them.
Run it through the shell function printed by 'coal init', which evals its output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.initLogger()
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	// stdout은 eval되므로 help와 usage는 stderr로 보낸다
	cmd.SetOut(a.stderr())
	cmd.SetErr(a.stderr())

	defaultCfg := a.CfgPath
	if defaultCfg == "" && a.Home != "" {
		defaultCfg = config.DefaultPath(a.Home)
	}
	cmd.PersistentFlags().StringVar(&a.CfgPath, "config", defaultCfg, "config file path")
	cmd.PersistentFlags().BoolVarP(&a.Verbose, "verbose", "v", false, "debug logging on stderr")

	cmd.AddCommand(
		a.newNewCmd(),
		a.newDeleteCmd(),
		a.newLoadCmd(),
		a.newShowCmd(),
		a.newAddCmd(),
		a.newRemCmd(),
		a.newInitCmd(),
		a.newSetupCmd(),
		a.newDoctorCmd(),
		a.newConfigCmd(),
		a.newVersionCmd(),
	)
	return cmd
}

// Run은 args로 명령을 실행하고 오류를 보고한 뒤 종료 코드를 반환한다.
func (a *App) Run(args []string) int {
	cmd := a.NewRootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err != nil {
		a.ReportError(err)
	}
	return int(MapExitCode(err))
}

func (a *App) initLogger() {
	level := slog.LevelWarn
	if a.Verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr(), &slog.HandlerOptions{Level: level}))
}

func (a *App) log() *slog.Logger {
	if a.logger == nil {
		return slog.Default()
	}
	return a.logger
}

func (a *App) stdout() io.Writer {
	if a.Stdout == nil {
		return os.Stdout
	}
	return a.Stdout
}

func (a *App) stderr() io.Writer {
	if a.Stderr == nil {
		return os.Stderr
	}
	return a.Stderr
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the coal version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eval(func(_ *invocation, out *shell.Script) error {
				out.Add(shell.Echo("coal " + a.version()))
				return nil
			})
		},
	}
}

func (a *App) version() string {
	if a.Version == "" {
		return Version
	}
	return a.Version
}
