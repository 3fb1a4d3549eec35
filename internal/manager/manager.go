// Package manager implements coal's commands. Each operation takes a
// snapshot of the active-container variable and appends the shell
// statements that move the parent shell to the next state.
package manager

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hbjs97/coal/internal/aliasfile"
	"github.com/hbjs97/coal/internal/container"
	"github.com/hbjs97/coal/internal/session"
	"github.com/hbjs97/coal/internal/shell"
)

// Manager는 Store와 셸 구문 생성을 묶어 명령을 실행한다.
type Manager struct {
	store  *container.Store
	kind   shell.Kind
	marker string
	log    *slog.Logger
}

// Options는 Manager 생성 옵션이다.
type Options struct {
	Store *container.Store
	Shell shell.Kind
	// Marker는 show에서 활성 컨테이너 뒤에 붙는 표시다.
	Marker string
	// Logger가 nil이면 slog.Default()를 쓴다.
	Logger *slog.Logger
}

// New는 Manager를 만든다.
func New(opts Options) *Manager {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		store:  opts.Store,
		kind:   opts.Shell,
		marker: opts.Marker,
		log:    log,
	}
}

func fail(err error, format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...), Err: err}
}

// Setup은 모든 명령 전에 실행된다. 루트 디렉토리를 보장하고,
// ActiveVar가 없으면 Sentinel로 설정하는 구문을 추가한다.
func (m *Manager) Setup(out *shell.Script, snap session.Snapshot) error {
	created, err := m.store.EnsureRoot()
	if err != nil {
		return fail(err, "Cannot initialize coal - insufficient permissions?")
	}
	if created {
		m.log.Debug("setup: root created", "root", m.store.Root())
	}
	if snap.State() == session.Uninitialized {
		out.Add(m.setActive(session.Sentinel))
	}
	return nil
}

// New는 컨테이너를 만들고 바로 load한다.
func (m *Manager) New(out *shell.Script, snap session.Snapshot, name string) error {
	if err := container.ValidateName(name); err != nil || name == session.Sentinel {
		if err == nil {
			err = container.ErrInvalidName
		}
		return fail(err, "Not a valid container name. Only numbers, letters, period, underscore, and hyphen allowed.")
	}
	if err := m.store.Create(name); err != nil {
		if errors.Is(err, container.ErrExists) {
			return fail(err, "Container %s already exists.", name)
		}
		return fail(err, "Cannot create directory - insufficient permissions?")
	}
	m.log.Debug("new: container created", "name", name)
	return m.Load(out, snap, name)
}

// Load는 활성 컨테이너를 name으로 바꾼다.
// 이전 컨테이너의 alias를 해제하고, 변수를 설정한 뒤, 새 alias를 정의한다.
func (m *Manager) Load(out *shell.Script, snap session.Snapshot, name string) error {
	if err := m.requireContainer(name); err != nil {
		return err
	}
	if snap.Is(name) {
		return fail(ErrAlreadyLoaded, "Container already loaded")
	}

	records, err := m.readAliases(name)
	if err != nil {
		return err
	}

	if cur, ok := snap.Current(); ok {
		if err := m.unaliasPrevious(out, cur); err != nil {
			return err
		}
	}

	out.Add(m.setActive(name))
	out.Add(shell.AliasAll(aliasfile.Lines(records)))
	return nil
}

// unaliasPrevious는 이전 활성 컨테이너의 alias를 해제한다.
// 컨테이너가 이미 지워졌다면 해제할 목록이 없으므로 경고만 남긴다.
func (m *Manager) unaliasPrevious(out *shell.Script, name string) error {
	ok, err := m.store.Exists(name)
	if err != nil {
		return fail(err, "Unable to access aliases")
	}
	if !ok {
		m.log.Warn("load: previously active container no longer exists", "name", name)
		return nil
	}
	records, err := m.readAliases(name)
	if err != nil {
		return err
	}
	out.Add(shell.UnaliasAll(aliasfile.Names(records)))
	return nil
}

// Delete는 컨테이너를 지운다. 활성 컨테이너라면 먼저 alias를 해제하고 Sentinel로 돌린다.
func (m *Manager) Delete(out *shell.Script, snap session.Snapshot, name string) error {
	if err := m.requireContainer(name); err != nil {
		return err
	}
	if snap.Is(name) {
		records, err := m.readAliases(name)
		if err != nil {
			return err
		}
		out.Add(shell.UnaliasAll(aliasfile.Names(records)))
		out.Add(m.setActive(session.Sentinel))
	}
	if err := m.store.Remove(name); err != nil {
		return fail(err, "Unable to delete container")
	}
	m.log.Debug("delete: container removed", "name", name)
	return nil
}

// ShowAll은 컨테이너마다 echo 구문을 추가한다. 활성 컨테이너에는 marker를 붙인다.
func (m *Manager) ShowAll(out *shell.Script, snap session.Snapshot) error {
	names, err := m.store.List()
	if err != nil {
		return fail(err, "Unable to read containers")
	}
	for _, name := range names {
		if snap.Is(name) {
			out.Add(shell.Echo(name + m.marker))
			continue
		}
		out.Add(shell.Echo(name))
	}
	return nil
}

// ShowAliases는 컨테이너의 alias마다 `NAME -> COMMAND` echo 구문을 추가한다.
func (m *Manager) ShowAliases(out *shell.Script, name string) error {
	if err := m.requireContainer(name); err != nil {
		return err
	}
	records, err := m.readAliases(name)
	if err != nil {
		return err
	}
	for _, r := range records {
		out.Add(shell.EchoDouble(r.Name + " -> " + r.Command))
	}
	return nil
}

// Add는 활성 컨테이너에 alias를 추가하고 정의 구문을 추가한다.
func (m *Manager) Add(out *shell.Script, snap session.Snapshot, alias, command string) error {
	cur, err := m.active(snap)
	if err != nil {
		return err
	}

	rec := aliasfile.Record{Name: alias, Command: command}
	if err := rec.Validate(); err != nil {
		return fail(err, "Invalid alias: %s", alias)
	}

	path := m.store.AliasFilePath(cur)
	found, err := aliasfile.Contains(path, alias)
	if err != nil {
		return m.aliasFileError(err, cur)
	}
	if found {
		return fail(ErrAliasExists, "Alias %s already exists", alias)
	}

	if err := aliasfile.Append(path, rec); err != nil {
		return fail(err, "Unable to write alias.")
	}
	out.Add(rec.Line())
	return nil
}

// Remove는 활성 컨테이너에서 alias를 지우고 unalias 구문을 추가한다.
func (m *Manager) Remove(out *shell.Script, snap session.Snapshot, alias string) error {
	cur, err := m.active(snap)
	if err != nil {
		return err
	}

	removed, err := aliasfile.RemoveByName(m.store.AliasFilePath(cur), alias)
	if err != nil {
		return m.aliasFileError(err, cur)
	}
	if !removed {
		return fail(ErrAliasNotFound, "No such alias: %s", alias)
	}
	out.Add(shell.UnaliasAll([]string{alias}))
	return nil
}

// active는 add/rem이 대상으로 삼을 활성 컨테이너를 확인한다.
func (m *Manager) active(snap session.Snapshot) (string, error) {
	cur, err := snap.RequireActive()
	switch {
	case errors.Is(err, session.ErrUnset):
		return "", fail(err, "$%s does not exist. Rerun setup.", session.ActiveVar)
	case err != nil:
		return "", fail(err, "No alias container active.")
	}
	if err := m.requireContainer(cur); err != nil {
		return "", err
	}
	return cur, nil
}

func (m *Manager) requireContainer(name string) error {
	ok, err := m.store.Exists(name)
	if err != nil {
		return fail(err, "Unable to access containers")
	}
	if !ok {
		return fail(container.ErrNotFound, "No such container: %s", name)
	}
	return nil
}

func (m *Manager) readAliases(name string) ([]aliasfile.Record, error) {
	records, err := m.store.Aliases(name)
	if err != nil {
		return nil, m.aliasFileError(err, name)
	}
	return records, nil
}

func (m *Manager) aliasFileError(err error, name string) error {
	switch {
	case errors.Is(err, aliasfile.ErrCorrupt):
		return fail(err, "Invalid alias file in container %s", name)
	case errors.Is(err, container.ErrNotFound):
		return fail(err, "No such container: %s", name)
	}
	return fail(err, "Unable to access aliases")
}

func (m *Manager) setActive(value string) string {
	return shell.SetVar(m.kind, session.ActiveVar, value)
}
