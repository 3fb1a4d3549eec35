package cli

import (
	"fmt"

	"github.com/hbjs97/coal/internal/config"
	"github.com/hbjs97/coal/internal/container"
	"github.com/hbjs97/coal/internal/manager"
	"github.com/hbjs97/coal/internal/session"
	"github.com/hbjs97/coal/internal/shell"
)

// invocation은 한 번의 실행에서 환경과 설정으로부터 계산된 값이다.
type invocation struct {
	snap  session.Snapshot
	cfg   *config.Config
	root  string
	kind  shell.Kind
	store *container.Store
	mgr   *manager.Manager
}

// prepare는 환경 스냅샷, 설정, 루트 경로, 셸 종류를 결정한다.
// lenient이면 설정 파일 오류를 경고로 남기고 기본값을 쓴다.
func (a *App) prepare(lenient bool) (*invocation, error) {
	snap, err := session.FromEnviron(a.Environ, a.GOOS)
	if err != nil {
		return nil, &manager.Error{Msg: "Unable to read environment", Err: err}
	}

	cfg, err := config.Load(a.CfgPath)
	if err != nil {
		if !lenient {
			return nil, &manager.Error{Msg: fmt.Sprintf("Invalid config file %s", a.CfgPath), Err: err}
		}
		a.log().Warn("config: using defaults", "path", a.CfgPath, "error", err)
		cfg = config.Default()
	}

	root, source, err := cfg.ResolveRoot(snap.Home, a.Home)
	if err != nil {
		return nil, &manager.Error{Msg: "No home directory detected. Set $COAL_HOME.", Err: err}
	}

	kind := shell.Resolve(snap.ShellHints())
	a.log().Debug("invocation", "root", root, "root_source", source, "shell", kind, "state", snap.State())

	store := container.New(root)
	return &invocation{
		snap:  snap,
		cfg:   cfg,
		root:  root,
		kind:  kind,
		store: store,
		mgr: manager.New(manager.Options{
			Store:  store,
			Shell:  kind,
			Marker: cfg.ActiveMarker,
			Logger: a.log(),
		}),
	}, nil
}

// eval은 setup 후 fn을 실행하고, 쌓인 구문을 한 줄로 stdout에 쓴다.
// 실패하면 아무 구문도 쓰지 않고 EvalError를 반환한다.
func (a *App) eval(fn func(inv *invocation, out *shell.Script) error) error {
	return a.run(false, fn)
}

func (a *App) run(lenient bool, fn func(inv *invocation, out *shell.Script) error) error {
	inv, err := a.prepare(lenient)
	if err != nil {
		return &EvalError{Err: err}
	}

	var out shell.Script
	if err := inv.mgr.Setup(&out, inv.snap); err != nil {
		return &EvalError{Err: err}
	}
	if err := fn(inv, &out); err != nil {
		return &EvalError{Err: err}
	}

	if _, err := fmt.Fprintln(a.stdout(), out.String()); err != nil {
		return fmt.Errorf("cli.eval: %w", err)
	}
	return nil
}
