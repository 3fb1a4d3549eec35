// Package doctor diagnoses a coal installation: the container root, the
// config file, the session variable, every container's alias file, and the
// shell hook.
package doctor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/hbjs97/coal/internal/config"
	"github.com/hbjs97/coal/internal/container"
	"github.com/hbjs97/coal/internal/session"
	"github.com/hbjs97/coal/internal/shell"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// Inputs는 RunAll이 검사할 대상이다.
type Inputs struct {
	Store      *container.Store
	ConfigPath string
	Session    session.Snapshot
	// RCPath가 비어 있으면 hook 검사를 건너뛴다.
	RCPath string
}

// CheckRoot는 컨테이너 루트 디렉토리를 확인한다.
func CheckRoot(store *container.Store) DiagResult {
	info, err := os.Stat(store.Root())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return DiagResult{
			Name:    "root",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s does not exist", store.Root()),
			Fix:     "run any coal command to create it",
		}
	case err != nil:
		return DiagResult{
			Name:    "root",
			Status:  StatusFail,
			Message: err.Error(),
			Fix:     fmt.Sprintf("check permissions on %s", store.Root()),
		}
	case !info.IsDir():
		return DiagResult{
			Name:    "root",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s is not a directory", store.Root()),
			Fix:     "check root_dir in the config file or $COAL_HOME",
		}
	}
	return DiagResult{Name: "root", Status: StatusOK, Message: store.Root()}
}

// CheckConfig는 설정 파일을 파싱해 본다. 파일이 없으면 기본값이므로 정상이다.
func CheckConfig(path string) DiagResult {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return DiagResult{Name: "config", Status: StatusOK, Message: "no config file, using defaults"}
	}
	if _, err := config.Load(path); err != nil {
		return DiagResult{
			Name:    "config",
			Status:  StatusFail,
			Message: err.Error(),
			Fix:     fmt.Sprintf("edit %s", path),
		}
	}
	return DiagResult{Name: "config", Status: StatusOK, Message: path}
}

// CheckSession은 활성 컨테이너 변수를 확인한다.
func CheckSession(store *container.Store, snap session.Snapshot) DiagResult {
	switch snap.State() {
	case session.Uninitialized:
		return DiagResult{
			Name:    "session",
			Status:  StatusWarn,
			Message: fmt.Sprintf("$%s is not set", session.ActiveVar),
			Fix:     "run coal setup and restart your shell",
		}
	case session.NoneActive:
		return DiagResult{Name: "session", Status: StatusOK, Message: "no container active"}
	}

	ok, err := store.Exists(snap.ActiveName)
	if err != nil || !ok {
		return DiagResult{
			Name:    "session",
			Status:  StatusFail,
			Message: fmt.Sprintf("active container %s does not exist", snap.ActiveName),
			Fix:     "run coal load <name> to switch to another container",
		}
	}
	return DiagResult{Name: "session", Status: StatusOK, Message: "active container: " + snap.ActiveName}
}

// CheckContainers는 모든 컨테이너의 alias 파일을 파싱해 본다.
func CheckContainers(store *container.Store) []DiagResult {
	names, err := store.List()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return []DiagResult{{
			Name:    "containers",
			Status:  StatusFail,
			Message: err.Error(),
		}}
	}

	results := make([]DiagResult, 0, len(names))
	for _, name := range names {
		path := store.AliasFilePath(name)
		records, err := store.Aliases(name)
		if err != nil {
			results = append(results, DiagResult{
				Name:    "container_" + name,
				Status:  StatusFail,
				Message: err.Error(),
				Fix:     fmt.Sprintf("edit %s", path),
			})
			continue
		}
		results = append(results, DiagResult{
			Name:    "container_" + name,
			Status:  StatusOK,
			Message: fmt.Sprintf("%d aliases", len(records)),
		})
	}
	return results
}

// CheckShellHook은 rc 파일에 coal 통합 블록이 있는지 확인한다.
func CheckShellHook(rcPath string) DiagResult {
	data, err := os.ReadFile(rcPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return DiagResult{Name: "shell_hook", Status: StatusFail, Message: err.Error()}
	}
	if !strings.Contains(string(data), shell.HookMarker) {
		return DiagResult{
			Name:    "shell_hook",
			Status:  StatusWarn,
			Message: fmt.Sprintf("no coal hook in %s", rcPath),
			Fix:     "run coal setup",
		}
	}
	return DiagResult{Name: "shell_hook", Status: StatusOK, Message: rcPath}
}

// RunAll은 모든 진단을 실행한다.
func RunAll(in Inputs) []DiagResult {
	var results []DiagResult
	results = append(results, CheckRoot(in.Store))
	results = append(results, CheckConfig(in.ConfigPath))
	results = append(results, CheckSession(in.Store, in.Session))
	results = append(results, CheckContainers(in.Store)...)
	if in.RCPath != "" {
		results = append(results, CheckShellHook(in.RCPath))
	}
	return results
}

// Failed는 StatusFail 결과가 하나라도 있는지 확인한다.
func Failed(results []DiagResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
