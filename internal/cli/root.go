package cli

import (
	"context"
	"errors"
	"io"

	"github.com/kanweiwei/cai/internal/clients/openai"
	"github.com/kanweiwei/cai/internal/config"
	"github.com/kanweiwei/cai/internal/core"
	"github.com/kanweiwei/cai/internal/git"
	"github.com/kanweiwei/cai/internal/tui"
	"github.com/spf13/cobra"
)

var version = "dev"

type commitFlags struct {
	dryRun bool
	yes    bool
	copy   bool
}

// environment holds everything the commands touch outside the process.
type environment struct {
	settingsPath func() (string, error)
	dotenvPath   string
	deps         func(cfg *config.Config, flags *commitFlags, out io.Writer) core.Deps
}

func defaultEnvironment() *environment {
	return &environment{
		settingsPath: config.DefaultPath,
		dotenvPath:   ".env",
		deps:         defaultDeps,
	}
}

func defaultDeps(cfg *config.Config, flags *commitFlags, out io.Writer) core.Deps {
	repo := git.New()
	selector := tui.NewSelector(flags.yes)
	selector.Out = out
	return core.Deps{
		Source:    repo,
		LLM:       openai.NewClient(cfg.LLMConfig()),
		Selector:  selector,
		Committer: repo,
		Spinner:   tui.NewSpinner(),
		Clipboard: tui.CopyToClipboard,
		Out:       out,
	}
}

func (e *environment) store() (*config.Store, error) {
	path, err := e.settingsPath()
	if err != nil {
		return nil, err
	}
	return config.NewStore(path), nil
}

// Execute runs the command tree with os.Args.
func Execute(ctx context.Context) error {
	return newRootCmd(defaultEnvironment()).ExecuteContext(ctx)
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, tui.ErrAborted):
		return 130
	default:
		return 1
	}
}

func newRootCmd(env *environment) *cobra.Command {
	flags := &commitFlags{}

	rootCmd := &cobra.Command{
		Use:           "cai",
		Short:         "Generate a commit message for staged changes and commit it",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(cmd, env, flags)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "Generate and pick a message but do not commit")
	addSelectionFlags(rootCmd, flags)

	rootCmd.AddCommand(newCommitCmd(env, flags))
	rootCmd.AddCommand(newConfigCmd(env))

	return rootCmd
}

func addSelectionFlags(cmd *cobra.Command, flags *commitFlags) {
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Take the first suggestion without prompting")
	cmd.Flags().BoolVarP(&flags.copy, "copy", "c", false, "Copy the chosen message to the clipboard")
}
