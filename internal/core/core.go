package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/kanweiwei/cai/internal/config"
	"github.com/kanweiwei/cai/internal/git"
	"github.com/rs/zerolog/log"
)

type ChangeSource interface {
	StagedDiff(ctx context.Context) (string, error)
}

type LLMProvider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type Selector interface {
	Select(candidates []string) (string, error)
}

type Committer interface {
	Commit(ctx context.Context, message string, extraArgs []string) error
}

type Spinner interface {
	Start(message string)
	Stop()
}

type Deps struct {
	Source    ChangeSource
	LLM       LLMProvider
	Selector  Selector
	Committer Committer
	// Optional.
	Spinner   Spinner
	Clipboard func(string) error
	Out       io.Writer
}

type Options struct {
	DryRun bool
	Copy   bool
}

type Core struct {
	cfg  *config.Config
	deps Deps
}

func NewCore(cfg *config.Config, deps Deps) *Core {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if deps.Source == nil || deps.LLM == nil || deps.Selector == nil || deps.Committer == nil {
		panic("source, llm, selector and committer are required")
	}
	if deps.Spinner == nil {
		deps.Spinner = nopSpinner{}
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	return &Core{cfg: cfg, deps: deps}
}

// Run executes the whole flow: validate config, read the staged diff,
// generate candidates, let the user pick one and commit it.
func (c *Core) Run(ctx context.Context, opts Options) error {
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	diff, err := c.deps.Source.StagedDiff(ctx)
	if err != nil {
		if errors.Is(err, git.ErrNothingStaged) {
			fmt.Fprintln(c.deps.Out, "No staged changes. Stage some changes with git add and try again.")
			return nil
		}
		return fmt.Errorf("failed to get staged changes: %w", err)
	}

	candidates, err := c.Generate(ctx, diff)
	if err != nil {
		return err
	}

	choice, err := c.deps.Selector.Select(candidates)
	if err != nil {
		return err
	}
	if !slices.Contains(candidates, choice) {
		return fmt.Errorf("selected message %q is not one of the candidates", choice)
	}

	if opts.Copy && c.deps.Clipboard != nil {
		if err := c.deps.Clipboard(choice); err != nil {
			log.Warn().Err(err).Msg("Failed to copy to clipboard")
		} else {
			log.Info().Msg("Commit message copied to clipboard.")
		}
	}

	if opts.DryRun {
		fmt.Fprintf(c.deps.Out, "Selected: %s\n", choice)
		fmt.Fprintln(c.deps.Out, "Dry run: no commit was made.")
		return nil
	}

	if err := c.deps.Committer.Commit(ctx, choice, c.cfg.CommitArgs); err != nil {
		return err
	}
	log.Info().Msg("Commit successfully created!")
	return nil
}

// Generate asks the model for commit messages describing diff.
func (c *Core) Generate(ctx context.Context, diff string) ([]string, error) {
	if diff == "" {
		return nil, ErrEmptyDiff
	}

	log.Debug().Int("diff_bytes", len(diff)).Str("model", c.cfg.Model).Str("base_url", c.cfg.BaseURL).Msg("Generating commit messages")

	c.deps.Spinner.Start("Generating commit messages...")
	content, err := c.deps.LLM.Complete(ctx, SystemPrompt, UserPrompt(diff))
	c.deps.Spinner.Stop()
	if err != nil {
		return nil, &ErrGeneratingCommit{Msg: "llm provider failed", Err: err}
	}

	candidates := ParseCandidates(content)
	log.Debug().Strs("candidates", candidates).Msg("Parsed model response")
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	return candidates, nil
}

type nopSpinner struct{}

func (nopSpinner) Start(string) {}
func (nopSpinner) Stop()        {}
