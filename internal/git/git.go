package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

var ErrNothingStaged = errors.New("nothing staged")

// Repo runs git in Dir. Commit output goes to the attached streams.
type Repo struct {
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func New() *Repo {
	return &Repo{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (r *Repo) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	return cmd
}

// StagedDiff returns the diff of the index against HEAD.
func (r *Repo) StagedDiff(ctx context.Context) (string, error) {
	cmd := r.command(ctx, "--no-pager", "diff", "--cached", "--no-color", "--no-ext-diff")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git diff --cached failed: %w\nOutput: %s", err, strings.TrimSpace(stderr.String()))
	}
	if len(bytes.TrimSpace(output)) == 0 {
		return "", ErrNothingStaged
	}

	log.Debug().Int("bytes", len(output)).Msg("Read staged diff")
	return string(output), nil
}

// Commit records the index with message. extraArgs are placed before -m.
func (r *Repo) Commit(ctx context.Context, message string, extraArgs []string) error {
	args := append([]string{"commit"}, extraArgs...)
	args = append(args, "-m", message)

	cmd := r.command(ctx, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	log.Debug().Strs("args", args).Msg("Running git")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git commit failed: %w", err)
	}
	return nil
}
