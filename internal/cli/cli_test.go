package cli_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/coal/internal/cli"
	"github.com/hbjs97/coal/internal/config"
	"github.com/hbjs97/coal/internal/manager"
	"github.com/hbjs97/coal/internal/session"
	"github.com/hbjs97/coal/internal/shell"
	"github.com/hbjs97/coal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockFormRunner는 테스트용 FormRunner다.
type mockFormRunner struct {
	answer bool
	asked  []string
}

func (m *mockFormRunner) RunConfirm(message string) (bool, error) {
	m.asked = append(m.asked, message)
	return m.answer, nil
}

// harness는 같은 홈 디렉토리에서 coal을 여러 번 실행한다.
type harness struct {
	home    string
	cfgPath string
	goos    string
	env     map[string]string
	form    *mockFormRunner
}

func newHarness(t *testing.T, kv ...string) *harness {
	t.Helper()
	home := t.TempDir()
	return &harness{
		home:    home,
		cfgPath: config.DefaultPath(home),
		goos:    "linux",
		env:     testutil.Environ(t, kv...),
		form:    &mockFormRunner{answer: true},
	}
}

func (h *harness) root() string {
	return filepath.Join(h.home, ".coal", "cons")
}

func (h *harness) run(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	app := &cli.App{
		CfgPath:    h.cfgPath,
		Home:       h.home,
		GOOS:       h.goos,
		Environ:    h.env,
		Stdout:     &out,
		Stderr:     &errOut,
		FormRunner: h.form,
		Version:    "1.2.3",
	}
	code = app.Run(args)
	return code, out.String(), errOut.String()
}

// --- container commands ---

func TestNew_FirstRun(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	code, stdout, stderr := h.run("new", "work")

	assert.Equal(t, 0, code)
	assert.Equal(t, "export COAL_ACTIVE='NO CON';export COAL_ACTIVE='work';\n", stdout)
	assert.Empty(t, stderr)
	assert.Empty(t, testutil.ReadAliasFile(t, h.root(), "work"))
}

func TestNew_ThenLoadIsRejected(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, session.Sentinel)

	code, stdout, _ := h.run("new", "work")
	require.Equal(t, 0, code)
	assert.Equal(t, "export COAL_ACTIVE='work';\n", stdout)

	h.env[session.ActiveVar] = "work"
	code, stdout, _ = h.run("load", "work")
	assert.Equal(t, 1, code)
	assert.Equal(t, "echo 'Error: Container already loaded';\n", stdout)
}

func TestNew_InvalidName(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, session.Sentinel)

	code, stdout, _ := h.run("new", "NO CON")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "echo 'Error: Not a valid container name.")
	assert.NoDirExists(t, filepath.Join(h.root(), "NO CON"))
}

func TestLoad_SwitchesAliases(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, "home")
	testutil.WriteContainer(t, h.root(), "home", `alias gs="git status"`)
	testutil.WriteContainer(t, h.root(), "work", `alias k="kubectl"`)

	code, stdout, _ := h.run("load", "work")
	assert.Equal(t, 0, code)
	assert.Equal(t, "unalias gs;export COAL_ACTIVE='work';alias k=\"kubectl\";\n", stdout)
}

func TestLoad_ErrorMessageIsQuoted(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, session.Sentinel)

	code, stdout, _ := h.run("load", "it's")
	assert.Equal(t, 1, code)
	assert.Equal(t, `echo 'Error: No such container: it'\''s';`+"\n", stdout)
}

func TestLoad_ShellSyntax(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		goos string
		env  []string
		want string
	}{
		{"zsh", "linux", []string{"ZSH_NAME", "zsh"}, "export COAL_ACTIVE='work';\n"},
		{"tcsh", "linux", []string{"shell", "/bin/tcsh"}, "setenv COAL_ACTIVE 'work';\n"},
		{"windows", "windows", nil, "set COAL_ACTIVE=work;\n"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newHarness(t, append([]string{session.ActiveVar, session.Sentinel}, tt.env...)...)
			h.goos = tt.goos
			testutil.WriteContainer(t, h.root(), "work")

			code, stdout, _ := h.run("load", "work")
			assert.Equal(t, 0, code)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestDelete_Active(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, "work")
	testutil.WriteContainer(t, h.root(), "work", `alias gs="git status"`)

	code, stdout, _ := h.run("delete", "work")
	assert.Equal(t, 0, code)
	assert.Equal(t, "unalias gs;export COAL_ACTIVE='NO CON';\n", stdout)
	assert.NoDirExists(t, filepath.Join(h.root(), "work"))
}

func TestDelete_Inactive(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, "work")
	testutil.WriteContainer(t, h.root(), "work", `alias gs="git status"`)
	testutil.WriteContainer(t, h.root(), "other")

	code, stdout, _ := h.run("delete", "other")
	assert.Equal(t, 0, code)
	assert.Equal(t, "\n", stdout)
}

func TestShow_MarksActiveWithConfiguredMarker(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, "work")
	require.NoError(t, os.MkdirAll(filepath.Dir(h.cfgPath), 0o700))
	require.NoError(t, os.WriteFile(h.cfgPath, []byte("version = 1\nactive_marker = \" (active)\"\n"), 0o600))
	testutil.WriteContainer(t, h.root(), "home")
	testutil.WriteContainer(t, h.root(), "work")

	code, stdout, _ := h.run("show")
	assert.Equal(t, 0, code)
	assert.Equal(t, "echo 'home';echo 'work (active)';\n", stdout)
}

func TestShow_Container(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, session.Sentinel)
	testutil.WriteContainer(t, h.root(), "work", `alias say="echo \"hi\""`)

	code, stdout, _ := h.run("show", "work")
	assert.Equal(t, 0, code)
	assert.Equal(t, `echo "say -> echo \"hi\"";`+"\n", stdout)
}

func TestRootOverrideFromEnvironment(t *testing.T) {
	t.Parallel()
	custom := filepath.Join(t.TempDir(), "cons")
	h := newHarness(t, session.ActiveVar, session.Sentinel, "COAL_HOME", custom)

	code, _, _ := h.run("new", "work")
	assert.Equal(t, 0, code)
	assert.DirExists(t, filepath.Join(custom, "work"))
	assert.NoDirExists(t, h.root())
}

func TestNoHomeDirectory(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, session.Sentinel)
	h.home = ""

	code, stdout, _ := h.run("show")
	assert.Equal(t, 1, code)
	assert.Equal(t, "echo 'Error: No home directory detected. Set $COAL_HOME.';\n", stdout)
}

func TestInvalidConfigFile(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, session.Sentinel)
	h.cfgPath = testutil.TempConfigFile(t, "version = = 1\n")

	code, stdout, _ := h.run("show")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "echo 'Error: Invalid config file ")
}

// --- alias commands ---

func TestScenario_AddShowRemove(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	code, _, _ := h.run("new", "work")
	require.Equal(t, 0, code)
	h.env[session.ActiveVar] = "work"

	code, stdout, _ := h.run("add", "gs", "git status")
	require.Equal(t, 0, code)
	assert.Equal(t, "alias gs=\"git status\";\n", stdout)
	assert.Equal(t, "alias gs=\"git status\"\n", testutil.ReadAliasFile(t, h.root(), "work"))

	code, stdout, _ = h.run("show", "work")
	require.Equal(t, 0, code)
	assert.Equal(t, "echo \"gs -> git status\";\n", stdout)

	code, stdout, _ = h.run("rem", "gs")
	require.Equal(t, 0, code)
	assert.Equal(t, "unalias gs;\n", stdout)
	assert.Empty(t, testutil.ReadAliasFile(t, h.root(), "work"))

	code, stdout, _ = h.run("show", "work")
	require.Equal(t, 0, code)
	assert.Equal(t, "\n", stdout)
}

func TestAdd_Duplicate(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, "work")
	testutil.WriteContainer(t, h.root(), "work", `alias gs="git status"`)

	code, stdout, _ := h.run("add", "gs", "git stash")
	assert.Equal(t, 1, code)
	assert.Equal(t, "echo 'Error: Alias gs already exists';\n", stdout)
	assert.Equal(t, "alias gs=\"git status\"\n", testutil.ReadAliasFile(t, h.root(), "work"))
}

func TestAdd_NoActiveContainer(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, session.Sentinel)

	code, stdout, _ := h.run("add", "gs", "git status")
	assert.Equal(t, 1, code)
	assert.Equal(t, "echo 'Error: No alias container active.';\n", stdout)
}

func TestAdd_VariableUnset(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	code, stdout, _ := h.run("add", "gs", "git status")
	assert.Equal(t, 1, code)
	assert.Equal(t, "echo 'Error: $COAL_ACTIVE does not exist. Rerun setup.';\n", stdout)
}

func TestRemove_Alias(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, "work")
	testutil.WriteContainer(t, h.root(), "work", `alias gs="git status"`, `alias gst="git stash"`)

	code, stdout, _ := h.run("remove", "gs")
	assert.Equal(t, 0, code)
	assert.Equal(t, "unalias gs;\n", stdout)
	assert.Equal(t, "alias gst=\"git stash\"\n", testutil.ReadAliasFile(t, h.root(), "work"))

	code, stdout, _ = h.run("rem", "gs")
	assert.Equal(t, 1, code)
	assert.Equal(t, "echo 'Error: No such alias: gs';\n", stdout)
}

// --- usage errors ---

func TestUsageErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing name", []string{"new"}, "accepts 1 arg(s)"},
		{"extra args", []string{"load", "a", "b"}, "accepts 1 arg(s)"},
		{"add one arg", []string{"add", "gs"}, "accepts 2 arg(s)"},
		{"show two args", []string{"show", "a", "b"}, "accepts at most 1 arg(s)"},
		{"unknown command", []string{"frobnicate"}, "unknown command"},
		{"unknown flag", []string{"show", "--nope"}, "unknown flag"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newHarness(t, session.ActiveVar, session.Sentinel)

			code, stdout, stderr := h.run(tt.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.want)
			assert.Contains(t, stderr, "coal --help")
			assert.NoDirExists(t, h.root())
		})
	}
}

func TestHelpGoesToStderr(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	code, stdout, stderr := h.run("--help")
	assert.Equal(t, 0, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Usage:")
}

func TestVerboseLogsToStderr(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, session.Sentinel)

	code, stdout, stderr := h.run("--verbose", "show")
	assert.Equal(t, 0, code)
	assert.Equal(t, "\n", stdout)
	assert.Contains(t, stderr, "level=DEBUG")
}

// --- supporting commands ---

func TestInit(t *testing.T) {
	t.Parallel()
	h := newHarness(t, "ZSH_NAME", "zsh")

	code, stdout, _ := h.run("init")
	assert.Equal(t, 0, code)
	assert.Equal(t, shell.HookSnippet(shell.Zsh), stdout)

	code, stdout, _ = h.run("init", "tcsh")
	assert.Equal(t, 0, code)
	assert.Equal(t, shell.HookSnippet(shell.Tcsh), stdout)

	code, stdout, stderr := h.run("init", "fish")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.NotEmpty(t, stderr)

	assert.NoDirExists(t, h.root())
}

func TestSetup(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, session.Sentinel, "SHELL", "/bin/bash")

	code, stdout, stderr := h.run("setup")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "\n", stdout)
	assert.Contains(t, stderr, "Shell hook installed")
	assert.Len(t, h.form.asked, 2)

	rc, err := os.ReadFile(filepath.Join(h.home, ".bashrc"))
	require.NoError(t, err)
	assert.Contains(t, string(rc), `eval "$(command coal init bash)"`)
	assert.FileExists(t, h.cfgPath)
}

func TestSetup_UnsupportedShell(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, session.Sentinel, "shell", "/bin/tcsh")

	code, stdout, _ := h.run("setup")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "echo 'Error: ")
	assert.Empty(t, h.form.asked)
}

func TestDoctor(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, "work")
	testutil.WriteContainer(t, h.root(), "work", `alias gs="git status"`)

	code, stdout, _ := h.run("doctor")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "echo '[OK] root: ")
	assert.Contains(t, stdout, "echo '[OK] session: ")
	assert.Contains(t, stdout, "echo '[OK] container_work: ")
	assert.Contains(t, stdout, "echo '[WARN] shell_hook: ")
}

func TestDoctor_BrokenConfigStillRuns(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, session.Sentinel)
	h.cfgPath = testutil.TempConfigFile(t, "version = = 1\n")

	code, stdout, _ := h.run("doctor")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "echo '[FAIL] config: ")
}

func TestConfigInit(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, session.Sentinel)

	code, stdout, _ := h.run("config", "init")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "echo 'Config file created: ")

	cfg, err := config.Load(h.cfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	code, stdout, _ = h.run("config", "init")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "already exists.")
}

func TestVersion(t *testing.T) {
	t.Parallel()
	h := newHarness(t, session.ActiveVar, session.Sentinel)

	code, stdout, _ := h.run("version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "echo 'coal 1.2.3';\n", stdout)
}

// --- errors ---

func TestEvalError(t *testing.T) {
	t.Parallel()
	err := &cli.EvalError{Err: &manager.Error{Msg: "Alias gs already exists", Err: cli.ErrAliasExists}}

	assert.ErrorIs(t, err, cli.ErrAliasExists)
	assert.Equal(t, "Alias gs already exists", err.Message())

	plain := &cli.EvalError{Err: errors.New("boom")}
	assert.Equal(t, "boom", plain.Message())
}

func TestMapExitCode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, cli.ExitSuccess, cli.MapExitCode(nil))
	assert.Equal(t, cli.ExitGeneral, cli.MapExitCode(errors.New("x")))
	assert.Equal(t, cli.ExitGeneral, cli.MapExitCode(&cli.EvalError{Err: cli.ErrCorrupt}))
}
