package setup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/coal/internal/shell"
)

// ErrUnsupportedShell는 rc 파일 hook을 설치할 수 없는 셸이다.
var ErrUnsupportedShell = errors.New("unsupported shell")

// ShellRCPath는 셸별 RC 파일 경로를 반환한다. 지원하지 않는 셸이면 빈 문자열이다.
func ShellRCPath(home string, kind shell.Kind) string {
	switch kind {
	case shell.Zsh:
		return filepath.Join(home, ".zshrc")
	case shell.Bash:
		return filepath.Join(home, ".bashrc")
	case shell.Ksh:
		return filepath.Join(home, ".kshrc")
	default:
		return ""
	}
}

// HookInstalled는 rc 파일에 coal hook이 이미 있는지 확인한다.
func HookInstalled(rcPath string) (bool, error) {
	existing, err := os.ReadFile(rcPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("setup.HookInstalled: %w", err)
	}
	return strings.Contains(string(existing), shell.HookMarker), nil
}

// HookLine은 rc 파일에 추가되는 블록이다. 래퍼 함수 본문은 coal init이 출력한다.
func HookLine(kind shell.Kind) string {
	return fmt.Sprintf("# %s (%s)\neval \"$(command coal init %s)\"\n", shell.HookMarker, kind, kind)
}

// InstallShellHook은 셸 RC 파일에 coal hook을 추가한다.
// 이미 설치되어 있으면 건너뛰고 false를 반환한다.
func InstallShellHook(kind shell.Kind, rcPath string) (bool, error) {
	if ShellRCPath("", kind) == "" {
		return false, fmt.Errorf("setup.InstallShellHook: %s: %w", kind, ErrUnsupportedShell)
	}

	installed, err := HookInstalled(rcPath)
	if err != nil {
		return false, err
	}
	if installed {
		return false, nil
	}

	f, err := os.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return false, fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n%s", HookLine(kind)); err != nil {
		return false, fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	return true, nil
}
