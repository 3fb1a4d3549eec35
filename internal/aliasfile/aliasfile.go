// Package aliasfile reads and writes a container's alias file: one
// `alias NAME="COMMAND"` record per line, in insertion order.
package aliasfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrCorrupt는 alias 파일 줄이 문법에 맞지 않을 때의 sentinel error다.
	ErrCorrupt = errors.New("invalid alias file")
	// ErrInvalidAlias는 저장할 수 없는 alias 이름/명령일 때의 sentinel error다.
	ErrInvalidAlias = errors.New("invalid alias")
)

// forbiddenNameChars는 alias 이름에 쓸 수 없는 문자다. 셸 구문이나 파일 문법을 깨뜨린다.
const forbiddenNameChars = "=/$\\`'\";|&<>()"

// Record는 하나의 alias 레코드다. Command는 이스케이프가 풀린 원래 값이다.
type Record struct {
	Name    string
	Command string
	// Raw는 파일에서 읽은 줄 그대로다. 새로 만든 레코드는 비어 있다.
	Raw string
}

// Line은 Name과 Command로 만든 `alias NAME="COMMAND"` 표현이다.
func (r Record) Line() string {
	return "alias " + r.Name + `="` + escape(r.Command) + `"`
}

// Text는 파일에 쓰이고 셸로 내보내는 줄이다. 읽어 온 레코드는 Raw를 다시 인코딩하지 않는다.
func (r Record) Text() string {
	if r.Raw != "" {
		return r.Raw
	}
	return r.Line()
}

// Names는 레코드 이름을 순서대로 반환한다.
func Names(records []Record) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	return names
}

// Lines는 레코드를 alias 정의 줄로 변환한다.
func Lines(records []Record) []string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, r.Text())
	}
	return lines
}

// ValidateName은 alias 이름을 검사한다.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("aliasfile.ValidateName: 빈 이름: %w", ErrInvalidAlias)
	}
	// alias/unalias가 옵션으로 해석한다
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("aliasfile.ValidateName: %q: '-'로 시작: %w", name, ErrInvalidAlias)
	}
	if strings.ContainsAny(name, forbiddenNameChars) || strings.ContainsFunc(name, isSpace) {
		return fmt.Errorf("aliasfile.ValidateName: %q: %w", name, ErrInvalidAlias)
	}
	return nil
}

// Validate는 레코드가 한 줄로 저장될 수 있는지 검사한다.
func (r Record) Validate() error {
	if err := ValidateName(r.Name); err != nil {
		return err
	}
	if r.Command == "" {
		return fmt.Errorf("aliasfile.Validate: %s: 빈 명령: %w", r.Name, ErrInvalidAlias)
	}
	if strings.ContainsAny(r.Command, "\r\n") {
		return fmt.Errorf("aliasfile.Validate: %s: 명령에 줄바꿈 포함: %w", r.Name, ErrInvalidAlias)
	}
	return nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

// ParseLine은 한 줄을 Record로 파싱한다. Raw에는 line이 그대로 남는다.
// 따옴표 없는 `alias NAME=COMMAND` 형식도 값 그대로 받아들인다.
func ParseLine(line string) (Record, error) {
	rest, ok := strings.CutPrefix(line, "alias ")
	if !ok {
		return Record{}, ErrCorrupt
	}
	name, value, ok := strings.Cut(rest, "=")
	if !ok || ValidateName(name) != nil {
		return Record{}, ErrCorrupt
	}
	if !strings.HasPrefix(value, `"`) {
		return Record{Name: name, Command: value, Raw: line}, nil
	}
	cmd, err := unquote(value)
	if err != nil {
		return Record{}, err
	}
	return Record{Name: name, Command: cmd, Raw: line}, nil
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return r.Replace(s)
}

// unquote는 `"..."` 값을 해석한다. 닫는 따옴표는 반드시 마지막 문자여야 한다.
func unquote(value string) (string, error) {
	var b strings.Builder
	for i := 1; i < len(value); i++ {
		c := value[i]
		switch c {
		case '\\':
			if i+1 < len(value) && (value[i+1] == '"' || value[i+1] == '\\') {
				b.WriteByte(value[i+1])
				i++
				continue
			}
			b.WriteByte(c)
		case '"':
			if i != len(value)-1 {
				return "", ErrCorrupt
			}
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}
	return "", ErrCorrupt
}

// ReadAll은 파일의 모든 레코드를 순서대로 읽는다. 빈 줄은 건너뛴다.
// 문법에 맞지 않는 줄이 하나라도 있으면 ErrCorrupt를 반환한다.
func ReadAll(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("aliasfile.ReadAll: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("aliasfile.ReadAll: %s:%d: %w", filepath.Base(path), lineNo, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("aliasfile.ReadAll: %w", err)
	}
	return records, nil
}

// Contains는 정확히 같은 이름의 레코드가 있는지 확인한다.
// 접두사가 같은 다른 이름(gs / gst)은 일치로 보지 않는다.
func Contains(path, name string) (bool, error) {
	records, err := ReadAll(path)
	if err != nil {
		return false, err
	}
	for _, r := range records {
		if r.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// Append는 레코드를 파일 끝에 추가한다. 중복 검사는 호출자의 책임이다.
func Append(path string, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	existing, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("aliasfile.Append: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("aliasfile.Append: %w", err)
	}
	defer f.Close()

	line := rec.Line() + "\n"
	// 손으로 편집된 파일은 마지막 줄바꿈이 없을 수 있다
	if len(existing) > 0 && existing[len(existing)-1] != '\n' {
		line = "\n" + line
	}
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("aliasfile.Append: %w", err)
	}
	return nil
}

// RemoveByName은 이름이 일치하는 레코드를 제외하고 파일을 다시 쓴다.
// 제거된 레코드가 있으면 true다.
func RemoveByName(path, name string) (bool, error) {
	records, err := ReadAll(path)
	if err != nil {
		return false, err
	}

	kept := records[:0:0]
	for _, r := range records {
		if r.Name != name {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return false, nil
	}

	if err := WriteAll(path, kept); err != nil {
		return false, err
	}
	return true, nil
}

// WriteAll은 레코드 전체로 파일을 교체한다. 읽어 온 레코드는 원래 줄 그대로 쓴다.
// 같은 디렉토리의 임시 파일에 쓴 뒤 rename하므로 중간 상태가 남지 않는다.
func WriteAll(path string, records []Record) error {
	var b strings.Builder
	for _, r := range records {
		if r.Raw == "" {
			if err := r.Validate(); err != nil {
				return err
			}
		}
		b.WriteString(r.Text())
		b.WriteByte('\n')
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("aliasfile.WriteAll: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.WriteString(b.String()); err != nil {
		cleanup()
		return fmt.Errorf("aliasfile.WriteAll: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("aliasfile.WriteAll: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		cleanup()
		return fmt.Errorf("aliasfile.WriteAll: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("aliasfile.WriteAll: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("aliasfile.WriteAll: %w", err)
	}
	return nil
}
