package cli

import (
	"errors"
	"fmt"

	"github.com/hbjs97/coal/internal/aliasfile"
	"github.com/hbjs97/coal/internal/config"
	"github.com/hbjs97/coal/internal/container"
	"github.com/hbjs97/coal/internal/manager"
	"github.com/hbjs97/coal/internal/session"
	"github.com/hbjs97/coal/internal/shell"
)

// 각 도메인 패키지의 sentinel error를 CLI 레이어에서 편의상 re-export한다.
var (
	// ErrInvalidName는 컨테이너 이름 규칙 위반이다.
	ErrInvalidName = container.ErrInvalidName
	// ErrContainerExists는 같은 이름의 컨테이너가 이미 있을 때의 sentinel error다.
	ErrContainerExists = container.ErrExists
	// ErrContainerNotFound는 컨테이너가 없을 때의 sentinel error다.
	ErrContainerNotFound = container.ErrNotFound
	// ErrNoHome는 루트 경로를 정할 수 없을 때의 sentinel error다.
	ErrNoHome = container.ErrNoHome
	// ErrCorrupt는 alias 파일이 문법에 맞지 않을 때의 sentinel error다.
	ErrCorrupt = aliasfile.ErrCorrupt
	// ErrInvalidAlias는 저장할 수 없는 alias일 때의 sentinel error다.
	ErrInvalidAlias = aliasfile.ErrInvalidAlias
	// ErrUnset는 활성 컨테이너 변수가 설정되지 않았을 때의 sentinel error다.
	ErrUnset = session.ErrUnset
	// ErrNoActive는 활성 컨테이너가 없을 때의 sentinel error다.
	ErrNoActive = session.ErrNoActive
	// ErrAlreadyLoaded는 이미 활성인 컨테이너를 다시 load할 때의 sentinel error다.
	ErrAlreadyLoaded = manager.ErrAlreadyLoaded
	// ErrAliasExists는 같은 이름의 alias가 이미 있을 때의 sentinel error다.
	ErrAliasExists = manager.ErrAliasExists
	// ErrAliasNotFound는 alias가 없을 때의 sentinel error다.
	ErrAliasNotFound = manager.ErrAliasNotFound
	// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
	ErrConfig = config.ErrConfig
	// ErrConfigExists는 config init이 기존 파일을 덮어쓰려 할 때의 sentinel error다.
	ErrConfigExists = errors.New("config file already exists")
)

// EvalError는 stdout에 `echo 'Error: ...'` 구문으로 보고되는 도메인/IO 오류다.
// EvalError가 아닌 오류(인자 오류 등)는 stderr로만 보고된다.
type EvalError struct {
	Err error
}

func (e *EvalError) Error() string { return e.Err.Error() }

func (e *EvalError) Unwrap() error { return e.Err }

// Message는 사용자에게 보여줄 메시지다.
func (e *EvalError) Message() string {
	var merr *manager.Error
	if errors.As(e.Err, &merr) {
		return merr.Msg
	}
	return e.Err.Error()
}

// ReportError는 오류를 종류에 맞는 출력으로 보고한다.
func (a *App) ReportError(err error) {
	if err == nil {
		return
	}
	a.log().Debug("command failed", "error", err)

	var eerr *EvalError
	if errors.As(err, &eerr) {
		var out shell.Script
		out.Add(shell.ErrorStatement(eerr.Message()))
		fmt.Fprintln(a.stdout(), out.String())
		return
	}
	fmt.Fprintf(a.stderr(), "Error: %v\nRun 'coal --help' for usage.\n", err)
}
