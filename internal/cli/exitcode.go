package cli

// ExitCode는 coal의 종료 코드다.
type ExitCode int

const (
	// ExitSuccess는 정상 종료다.
	ExitSuccess ExitCode = 0
	// ExitGeneral는 인자 오류와 도메인 오류 모두에 쓰인다.
	ExitGeneral ExitCode = 1
)

// MapExitCode는 오류를 종료 코드로 바꾼다.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	return ExitGeneral
}
