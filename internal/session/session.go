// Package session reconstructs the active-container state from a snapshot
// of the parent shell's environment. coal never stores this state itself:
// it only reads COAL_ACTIVE and asks the shell to change it.
package session

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/hbjs97/coal/internal/shell"
)

const (
	// ActiveVar는 활성 컨테이너 이름을 담는 환경변수다.
	ActiveVar = "COAL_ACTIVE"
	// Sentinel은 "활성 컨테이너 없음"을 뜻하는 예약 값이다.
	Sentinel = "NO CON"
)

var (
	// ErrUnset는 ActiveVar가 아직 설정되지 않았을 때의 sentinel error다.
	ErrUnset = errors.New("active container variable unset")
	// ErrNoActive는 활성 컨테이너가 없을 때의 sentinel error다.
	ErrNoActive = errors.New("no alias container active")
)

// State는 활성 컨테이너 상태다.
type State int

const (
	// Uninitialized는 ActiveVar가 한 번도 설정되지 않은 상태다.
	Uninitialized State = iota
	// NoneActive는 ActiveVar가 Sentinel인 상태다.
	NoneActive
	// Active는 ActiveVar가 컨테이너 이름인 상태다.
	Active
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case NoneActive:
		return "none"
	case Active:
		return "active"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Snapshot은 한 번의 실행에서 읽은 환경변수 값이다.
type Snapshot struct {
	ActiveName string `env:"COAL_ACTIVE"`
	Home       string `env:"COAL_HOME"`
	Bash       string `env:"BASH"`
	ZshName    string `env:"ZSH_NAME"`
	TcshShell  string `env:"shell"`
	LoginShell string `env:"SHELL"`

	// Platform은 runtime.GOOS 값이다.
	Platform string

	activeSet bool
}

// FromEnviron은 환경변수 맵에서 Snapshot을 만든다.
// 빈 문자열로 설정된 COAL_ACTIVE는 설정되지 않은 것으로 본다.
func FromEnviron(environ map[string]string, platform string) (Snapshot, error) {
	if environ == nil {
		// nil이면 라이브러리가 프로세스 환경을 읽는다
		environ = map[string]string{}
	}
	var s Snapshot
	if err := env.ParseWithOptions(&s, env.Options{Environment: environ}); err != nil {
		return Snapshot{}, fmt.Errorf("session.FromEnviron: %w", err)
	}
	s.Platform = platform
	s.activeSet = environ[ActiveVar] != ""
	return s, nil
}

// Inactive는 Sentinel 상태의 Snapshot이다.
func Inactive() Snapshot {
	return With(Sentinel)
}

// With는 ActiveVar가 value인 Snapshot이다. 테스트와 상태 전이 계산에 쓴다.
func With(value string) Snapshot {
	return Snapshot{ActiveName: value, activeSet: value != ""}
}

// State는 현재 상태를 계산한다.
func (s Snapshot) State() State {
	switch {
	case !s.activeSet:
		return Uninitialized
	case s.ActiveName == Sentinel:
		return NoneActive
	default:
		return Active
	}
}

// Current는 활성 컨테이너 이름을 반환한다.
func (s Snapshot) Current() (string, bool) {
	if s.State() != Active {
		return "", false
	}
	return s.ActiveName, true
}

// Is는 name이 활성 컨테이너인지 확인한다.
func (s Snapshot) Is(name string) bool {
	cur, ok := s.Current()
	return ok && cur == name
}

// RequireActive는 활성 컨테이너 이름을 반환하고, 없으면 에러를 반환한다.
func (s Snapshot) RequireActive() (string, error) {
	switch s.State() {
	case Uninitialized:
		return "", ErrUnset
	case NoneActive:
		return "", ErrNoActive
	default:
		return s.ActiveName, nil
	}
}

// ShellHints는 셸 감지에 필요한 값이다.
func (s Snapshot) ShellHints() shell.Hints {
	return shell.Hints{
		Platform:  s.Platform,
		Bash:      s.Bash,
		ZshName:   s.ZshName,
		TcshShell: s.TcshShell,
		Shell:     s.LoginShell,
	}
}
