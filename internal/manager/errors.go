package manager

import "errors"

var (
	// ErrAlreadyLoaded는 이미 활성인 컨테이너를 다시 load할 때의 sentinel error다.
	ErrAlreadyLoaded = errors.New("container already loaded")
	// ErrAliasExists는 활성 컨테이너에 같은 이름의 alias가 있을 때의 sentinel error다.
	ErrAliasExists = errors.New("alias already exists")
	// ErrAliasNotFound는 제거할 alias가 없을 때의 sentinel error다.
	ErrAliasNotFound = errors.New("no such alias")
)

// Error는 사용자에게 echo로 보여줄 메시지를 가진 도메인 에러다.
type Error struct {
	// Msg는 `echo 'Error: <Msg>'`로 출력되는 문구다.
	Msg string
	// Err는 원인 에러다. errors.Is 판정에 쓰인다.
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
