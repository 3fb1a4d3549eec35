// Package container manages the directory-per-container layout under the
// coal root: <root>/<name>/aliases.
package container

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/hbjs97/coal/internal/aliasfile"
)

const (
	// DefaultRootDir는 홈 디렉토리 기준 기본 루트 경로다.
	DefaultRootDir = ".coal/cons"
	// AliasFileName은 컨테이너 디렉토리 안의 alias 파일 이름이다.
	AliasFileName = "aliases"
)

var (
	// ErrInvalidName는 컨테이너 이름 규칙 위반이다.
	ErrInvalidName = errors.New("invalid container name")
	// ErrExists는 같은 이름의 컨테이너가 이미 있을 때의 sentinel error다.
	ErrExists = errors.New("container already exists")
	// ErrNotFound는 컨테이너가 없을 때의 sentinel error다.
	ErrNotFound = errors.New("no such container")
	// ErrNoHome는 홈 디렉토리를 확인할 수 없을 때의 sentinel error다.
	ErrNoHome = errors.New("no home directory detected")
)

var nameRegex = regexp.MustCompile(`^[-_.A-Za-z0-9]+$`)

// ValidateName은 컨테이너 이름을 검사한다. "."과 ".."은 루트를 가리키므로 거부한다.
func ValidateName(name string) error {
	if !nameRegex.MatchString(name) || name == "." || name == ".." {
		return fmt.Errorf("container.ValidateName: %q: %w", name, ErrInvalidName)
	}
	return nil
}

// DefaultRoot는 home 아래의 기본 루트 경로다.
func DefaultRoot(home string) (string, error) {
	if home == "" {
		return "", ErrNoHome
	}
	return filepath.Join(home, DefaultRootDir), nil
}

// Store는 루트 디렉토리 위의 파일시스템 연산이다.
type Store struct {
	root string
}

// New는 root를 기준으로 Store를 만든다. 디렉토리는 EnsureRoot가 만든다.
func New(root string) *Store {
	return &Store{root: root}
}

// Root는 루트 디렉토리 경로다.
func (s *Store) Root() string { return s.root }

// EnsureRoot는 루트 디렉토리가 없으면 만든다. 새로 만들었으면 true다.
func (s *Store) EnsureRoot() (bool, error) {
	info, err := os.Stat(s.root)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("container.EnsureRoot: %s는 디렉토리가 아닙니다", s.root)
		}
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("container.EnsureRoot: %w", err)
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return false, fmt.Errorf("container.EnsureRoot: %w", err)
	}
	return true, nil
}

// Dir은 컨테이너 디렉토리 경로다.
func (s *Store) Dir(name string) string {
	return filepath.Join(s.root, name)
}

// AliasFilePath는 컨테이너의 alias 파일 경로다.
func (s *Store) AliasFilePath(name string) string {
	return filepath.Join(s.root, name, AliasFileName)
}

// Exists는 루트 바로 아래에 name 디렉토리가 있는지 확인한다.
// 이름 규칙에 맞지 않으면 경로를 만들지 않고 false를 반환한다.
func (s *Store) Exists(name string) (bool, error) {
	if ValidateName(name) != nil {
		return false, nil
	}
	info, err := os.Stat(s.Dir(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("container.Exists: %w", err)
	}
	return info.IsDir(), nil
}

// List는 루트 아래의 컨테이너 이름을 반환한다. 디렉토리가 아니거나 이름 규칙에 맞지 않는 항목은 무시한다.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("container.List: %w", err)
	}
	var names []string
	for _, e := range entries {
		// 이름 규칙에 맞지 않는 디렉토리는 load/delete로 다룰 수 없으므로 컨테이너가 아니다
		if !e.IsDir() || ValidateName(e.Name()) != nil {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Create는 컨테이너 디렉토리와 빈 alias 파일을 만든다.
func (s *Store) Create(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	ok, err := s.Exists(name)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("container.Create: %s: %w", name, ErrExists)
	}

	if err := os.Mkdir(s.Dir(name), 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("container.Create: %s: %w", name, ErrExists)
		}
		return fmt.Errorf("container.Create: %w", err)
	}

	f, err := os.OpenFile(s.AliasFilePath(name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("container.Create: %w", err)
	}
	return f.Close()
}

// Remove는 컨테이너 디렉토리를 통째로 지운다.
func (s *Store) Remove(name string) error {
	ok, err := s.Exists(name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("container.Remove: %s: %w", name, ErrNotFound)
	}
	if err := os.RemoveAll(s.Dir(name)); err != nil {
		return fmt.Errorf("container.Remove: %w", err)
	}
	return nil
}

// Aliases는 컨테이너의 alias 레코드를 읽는다.
func (s *Store) Aliases(name string) ([]aliasfile.Record, error) {
	ok, err := s.Exists(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("container.Aliases: %s: %w", name, ErrNotFound)
	}
	return aliasfile.ReadAll(s.AliasFilePath(name))
}
