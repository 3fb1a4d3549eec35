package shell

import "strings"

// Script는 한 번의 실행 동안 쌓이는 출력 구문 버퍼다.
type Script struct {
	stmts []string
}

// Add는 구문을 추가한다. 빈 구문은 무시한다.
func (s *Script) Add(stmt string) {
	if stmt == "" {
		return
	}
	s.stmts = append(s.stmts, stmt)
}

// Statements는 추가된 구문 목록의 복사본이다.
func (s *Script) Statements() []string {
	return append([]string(nil), s.stmts...)
}

// Len은 구문 개수다.
func (s *Script) Len() int { return len(s.stmts) }

// String은 각 구문 뒤에 ';'를 붙여 구분자 없이 이어 붙인다.
func (s *Script) String() string {
	var b strings.Builder
	for _, stmt := range s.stmts {
		b.WriteString(stmt)
		b.WriteByte(';')
	}
	return b.String()
}
