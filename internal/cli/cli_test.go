package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kanweiwei/cai/internal/config"
	"github.com/kanweiwei/cai/internal/core"
	"github.com/kanweiwei/cai/internal/git"
	"github.com/kanweiwei/cai/internal/tui"
)

type stubRepo struct {
	diff      string
	diffErr   error
	diffCalls int
	commits   []string
}

func (r *stubRepo) StagedDiff(context.Context) (string, error) {
	r.diffCalls++
	return r.diff, r.diffErr
}

func (r *stubRepo) Commit(_ context.Context, message string, _ []string) error {
	r.commits = append(r.commits, message)
	return nil
}

type stubLLM struct {
	content string
	calls   int
}

func (l *stubLLM) Complete(context.Context, string, string) (string, error) {
	l.calls++
	return l.content, nil
}

type testEnv struct {
	*environment
	settings string
	repo     *stubRepo
	llm      *stubLLM
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, k := range config.KnownKeys {
		t.Setenv(k, "")
	}

	dir := t.TempDir()
	te := &testEnv{
		settings: filepath.Join(dir, ".cairc"),
		repo:     &stubRepo{diff: "diff --git a/x b/x\n+x\n"},
		llm:      &stubLLM{content: "feat: add x\n```\nfix: bug\n"},
	}
	te.environment = &environment{
		settingsPath: func() (string, error) { return te.settings, nil },
		dotenvPath:   filepath.Join(dir, ".env"),
		deps: func(cfg *config.Config, flags *commitFlags, out io.Writer) core.Deps {
			return core.Deps{
				Source:    te.repo,
				LLM:       te.llm,
				Selector:  &tui.Selector{AutoSelect: flags.yes, Out: out},
				Committer: te.repo,
				Out:       out,
			}
		},
	}
	return te
}

func (te *testEnv) run(args ...string) (string, error) {
	cmd := newRootCmd(te.environment)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (te *testEnv) configure(t *testing.T) {
	t.Helper()
	data := "OPENAI_API_KEY=sk-test\nMODEL_NAME=gpt-4o-mini\n"
	if err := os.WriteFile(te.settings, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestConfigSetAndList(t *testing.T) {
	te := newTestEnv(t)

	out, err := te.run("config", "MODEL_NAME", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("config set error = %v", err)
	}
	if out != "MODEL_NAME=gpt-4o-mini\n" {
		t.Errorf("config set output = %q", out)
	}

	if _, err := te.run("config", "OPENAI_API_KEY", "sk-secret=="); err != nil {
		t.Fatal(err)
	}

	out, err = te.run("config", "--list")
	if err != nil {
		t.Fatalf("config --list error = %v", err)
	}
	want := "MODEL_NAME=gpt-4o-mini\nOPENAI_API_KEY=sk-secret==\n"
	if out != want {
		t.Errorf("config --list output = %q, want %q", out, want)
	}
}

func TestConfigGet(t *testing.T) {
	te := newTestEnv(t)
	te.configure(t)

	out, err := te.run("config", "MODEL_NAME")
	if err != nil {
		t.Fatalf("config get error = %v", err)
	}
	if out != "MODEL_NAME=gpt-4o-mini\n" {
		t.Errorf("config get output = %q", out)
	}

	if _, err := te.run("config", "UNKNOWN"); err == nil {
		t.Error("config get of an unset key should fail")
	}
}

func TestConfigNoArgumentsIsUsageError(t *testing.T) {
	te := newTestEnv(t)

	_, err := te.run("config")
	if !errors.Is(err, errConfigUsage) {
		t.Fatalf("config error = %v, want usage error", err)
	}
	if _, statErr := os.Stat(te.settings); !os.IsNotExist(statErr) {
		t.Error("usage error must not touch the settings file")
	}
}

func TestCommitDryRun(t *testing.T) {
	te := newTestEnv(t)
	te.configure(t)
	before, _ := os.ReadFile(te.settings)

	out, err := te.run("--dry-run", "commit", "--yes")
	if err != nil {
		t.Fatalf("commit error = %v", err)
	}
	if len(te.repo.commits) != 0 {
		t.Errorf("dry run committed %q", te.repo.commits)
	}
	if !strings.Contains(out, "Selected: feat: add x") || !strings.Contains(out, "Dry run") {
		t.Errorf("output = %q", out)
	}

	after, _ := os.ReadFile(te.settings)
	if !bytes.Equal(before, after) {
		t.Error("dry run must not change the settings file")
	}
}

func TestRootRunsCommitFlow(t *testing.T) {
	te := newTestEnv(t)
	te.configure(t)

	if _, err := te.run("--yes"); err != nil {
		t.Fatalf("root error = %v", err)
	}
	if len(te.repo.commits) != 1 || te.repo.commits[0] != "feat: add x" {
		t.Errorf("commits = %q", te.repo.commits)
	}
}

func TestCommitNothingStaged(t *testing.T) {
	te := newTestEnv(t)
	te.configure(t)
	te.repo.diffErr = git.ErrNothingStaged

	out, err := te.run("commit")
	if err != nil {
		t.Fatalf("commit error = %v, want nil", err)
	}
	if ExitCode(err) != 0 {
		t.Errorf("exit code = %d, want 0", ExitCode(err))
	}
	if te.llm.calls != 0 || len(te.repo.commits) != 0 {
		t.Error("nothing staged must skip generation and commit")
	}
	if !strings.Contains(out, "No staged changes") {
		t.Errorf("output = %q", out)
	}
}

func TestCommitMissingConfig(t *testing.T) {
	te := newTestEnv(t)
	if err := os.WriteFile(te.settings, []byte("MODEL_NAME=gpt-4o-mini\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := te.run("commit", "--yes")
	var missing *config.MissingSettingError
	if !errors.As(err, &missing) || missing.Key != config.KeyAPIKey {
		t.Fatalf("commit error = %v, want missing OPENAI_API_KEY", err)
	}
	if ExitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", ExitCode(err))
	}
	if te.repo.diffCalls != 0 || te.llm.calls != 0 {
		t.Error("missing config must stop before git and the API")
	}
}

func TestCommitUsesEnvironmentOverride(t *testing.T) {
	te := newTestEnv(t)
	if err := os.WriteFile(te.settings, []byte("MODEL_NAME=gpt-4o-mini\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.KeyAPIKey, "sk-from-env")

	if _, err := te.run("commit", "--yes"); err != nil {
		t.Fatalf("commit error = %v", err)
	}
	if len(te.repo.commits) != 1 {
		t.Errorf("commits = %q", te.repo.commits)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{tui.ErrAborted, 130},
		{errors.New("boom"), 1},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
