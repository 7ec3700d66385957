package cli

import (
	"github.com/kanweiwei/cai/internal/config"
	"github.com/kanweiwei/cai/internal/core"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newCommitCmd(env *environment, flags *commitFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Generate commit messages from the staged diff and commit the chosen one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(cmd, env, flags)
		},
	}
	addSelectionFlags(cmd, flags)
	return cmd
}

func runCommit(cmd *cobra.Command, env *environment, flags *commitFlags) error {
	store, err := env.store()
	if err != nil {
		return err
	}
	settings, err := store.Load()
	if err != nil {
		return err
	}
	overrides, err := config.Overrides(env.dotenvPath)
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(settings, overrides)
	if err != nil {
		return err
	}

	log.Debug().
		Bool("dry_run", flags.dryRun).
		Bool("yes", flags.yes).
		Bool("copy", flags.copy).
		Str("settings", store.Path()).
		Msg("Starting commit flow")

	c := core.NewCore(cfg, env.deps(cfg, flags, cmd.OutOrStdout()))
	return c.Run(cmd.Context(), core.Options{
		DryRun: flags.dryRun,
		Copy:   flags.copy,
	})
}
