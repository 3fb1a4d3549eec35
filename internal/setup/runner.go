package setup

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/hbjs97/coal/internal/config"
	"github.com/hbjs97/coal/internal/container"
	"github.com/hbjs97/coal/internal/doctor"
	"github.com/hbjs97/coal/internal/session"
	"github.com/hbjs97/coal/internal/shell"
)

// Runner는 interactive setup의 진입점이다.
type Runner struct {
	CfgPath    string
	Home       string
	Shell      shell.Kind
	Store      *container.Store
	Session    session.Snapshot
	FormRunner FormRunner
	// Out은 안내 메시지 출력 대상이다. 비어 있으면 stderr다.
	Out io.Writer
}

// Run은 setup 플로우를 실행한다. 설정 파일 생성, 루트 생성, hook 설치, 진단 순이다.
func (r *Runner) Run() error {
	if r.Home == "" {
		return fmt.Errorf("setup.Run: %w", container.ErrNoHome)
	}
	rcPath := ShellRCPath(r.Home, r.Shell)
	if rcPath == "" {
		return fmt.Errorf("setup.Run: %s: %w (add `eval \"$(coal init %s)\"` to your shell startup file manually)",
			r.Shell, ErrUnsupportedShell, r.Shell)
	}

	if err := r.ensureConfig(); err != nil {
		return err
	}

	if created, err := r.Store.EnsureRoot(); err != nil {
		return fmt.Errorf("setup.Run: %w", err)
	} else if created {
		r.printf("Created container root: %s\n", r.Store.Root())
	}

	if err := r.ensureHook(rcPath); err != nil {
		return err
	}

	r.runDoctor(rcPath)
	return nil
}

func (r *Runner) ensureConfig() error {
	_, err := os.Stat(r.CfgPath)
	if err == nil {
		r.printf("Using config file: %s\n", r.CfgPath)
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("setup.Run: %w", err)
	}

	ok, err := r.FormRunner.RunConfirm(fmt.Sprintf("Create config file at %s?", r.CfgPath))
	if err != nil {
		return err
	}
	if !ok {
		r.printf("Skipped config file; defaults will be used.\n")
		return nil
	}
	if err := config.Save(r.CfgPath, config.Default()); err != nil {
		return err
	}
	r.printf("Config file saved: %s\n", r.CfgPath)
	return nil
}

func (r *Runner) ensureHook(rcPath string) error {
	installed, err := HookInstalled(rcPath)
	if err != nil {
		return err
	}
	if installed {
		r.printf("Shell hook already installed: %s\n", rcPath)
		return nil
	}

	ok, err := r.FormRunner.RunConfirm(fmt.Sprintf("Install coal shell integration into %s?", rcPath))
	if err != nil {
		return err
	}
	if !ok {
		r.printf("Skipped shell hook. Add `eval \"$(coal init %s)\"` to %s to enable it.\n", r.Shell, rcPath)
		return nil
	}
	if _, err := InstallShellHook(r.Shell, rcPath); err != nil {
		return err
	}
	r.printf("Shell hook installed: %s (restart your shell)\n", rcPath)
	return nil
}

// runDoctor는 설정 완료 후 환경 진단을 실행한다.
func (r *Runner) runDoctor(rcPath string) {
	r.printf("\nRunning diagnostics...\n")
	results := doctor.RunAll(doctor.Inputs{
		Store:      r.Store,
		ConfigPath: r.CfgPath,
		Session:    r.Session,
		RCPath:     rcPath,
	})
	for _, res := range results {
		r.printf("  [%s] %s: %s\n", res.Status, res.Name, res.Message)
		if res.Fix != "" {
			r.printf("      Fix: %s\n", res.Fix)
		}
	}
}

func (r *Runner) printf(format string, args ...any) {
	out := r.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, format, args...)
}
