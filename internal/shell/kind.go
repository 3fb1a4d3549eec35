package shell

import (
	"fmt"
	"strings"
)

// Kind는 coal이 구문을 생성할 수 있는 셸 종류다.
type Kind int

const (
	// Bash는 감지 실패 시 기본값이다. 대부분의 셸이 export 구문을 지원한다.
	Bash Kind = iota
	Zsh
	Ksh
	Tcsh
	Windows
)

var kindNames = [...]string{
	Bash:    "bash",
	Zsh:     "zsh",
	Ksh:     "ksh",
	Tcsh:    "tcsh",
	Windows: "windows",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind는 셸 이름("bash", "zsh", ...)을 Kind로 변환한다.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(k), nil
		}
	}
	return Bash, fmt.Errorf("shell.ParseKind: 지원하지 않는 셸: %s", name)
}

// Hints는 셸 감지에 쓰이는 환경변수 스냅샷이다.
type Hints struct {
	// Platform은 runtime.GOOS 값이다.
	Platform string
	// Bash는 $BASH (bash가 설정하는 실행 파일 경로)다.
	Bash string
	// ZshName은 $ZSH_NAME이다.
	ZshName string
	// TcshShell은 tcsh가 설정하는 소문자 $shell이다.
	TcshShell string
	// Shell은 로그인 셸 $SHELL이다.
	Shell string
}

// Resolve는 환경 힌트를 순서대로 확인하여 셸 종류를 결정한다.
func Resolve(h Hints) Kind {
	if h.Platform == "windows" {
		return Windows
	}
	if strings.HasSuffix(h.Bash, "/bash") {
		return Bash
	}
	if h.ZshName == "zsh" {
		return Zsh
	}
	if strings.HasSuffix(h.TcshShell, "/tcsh") {
		return Tcsh
	}
	switch {
	case strings.HasSuffix(h.Shell, "/bash"):
		return Bash
	case strings.HasSuffix(h.Shell, "/ksh"):
		return Ksh
	case strings.HasSuffix(h.Shell, "/zsh"):
		return Zsh
	case strings.HasSuffix(h.Shell, "/tcsh"):
		return Tcsh
	default:
		return Bash
	}
}
