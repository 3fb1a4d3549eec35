package shell

import (
	"fmt"
	"strings"
)

// setVarFormats는 Kind별 변수 설정 구문 테이블이다. 모든 Kind에 항목이 있어야 한다.
var setVarFormats = [...]func(name, value string) string{
	Bash:    exportVar,
	Zsh:     exportVar,
	Ksh:     exportVar,
	Tcsh:    func(name, value string) string { return fmt.Sprintf("setenv %s %s", name, Quote(value)) },
	Windows: func(name, value string) string { return fmt.Sprintf("set %s=%s", name, value) },
}

func exportVar(name, value string) string {
	return fmt.Sprintf("export %s=%s", name, Quote(value))
}

// SetVar는 환경변수 설정 구문을 생성한다.
func SetVar(kind Kind, name, value string) string {
	if kind < 0 || int(kind) >= len(setVarFormats) {
		kind = Bash
	}
	return setVarFormats[kind](name, value)
}

// UnaliasAll은 각 이름에 대한 unalias 구문을 ';'로 연결한다. 입력이 비어 있으면 빈 문자열이다.
func UnaliasAll(names []string) string {
	stmts := make([]string, 0, len(names))
	for _, n := range names {
		stmts = append(stmts, "unalias "+n)
	}
	return strings.Join(stmts, ";")
}

// AliasAll은 alias 정의 줄들을 ';'로 연결한다. 입력이 비어 있으면 빈 문자열이다.
func AliasAll(lines []string) string {
	return strings.Join(lines, ";")
}

// Quote는 값을 작은따옴표로 감싼다. 내부의 작은따옴표는 '\'' 로 바꾼다.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Echo는 텍스트를 그대로 출력하는 echo 구문이다.
func Echo(text string) string {
	return "echo " + Quote(text)
}

// EchoDouble은 큰따옴표 echo 구문이다. 셸이 해석하는 문자는 이스케이프한다.
func EchoDouble(text string) string {
	var b strings.Builder
	b.WriteString(`echo "`)
	for _, r := range text {
		switch r {
		case '\\', '"', '$', '`':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// ErrorStatement는 치명적 오류를 알리는 구문이다.
func ErrorStatement(msg string) string {
	return Echo("Error: " + msg)
}
