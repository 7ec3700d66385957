package cli

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errConfigUsage = errors.New("config needs KEY VALUE to set, KEY to read, or --list")

func newConfigCmd(env *environment) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "Read or write settings in ~/.cairc",
		Long: `Read or write settings in ~/.cairc.

Known keys:
  OPENAI_API_KEY   API key for the chat completion endpoint (required)
  MODEL_NAME       model identifier (required)
  OPENAI_BASE_URL  alternative OpenAI-compatible endpoint
  COMMIT_ARGS      extra arguments for git commit, e.g. "--signoff"

Values are stored and listed in plain text.`,
		Example: `  cai config OPENAI_API_KEY sk-...
  cai config MODEL_NAME gpt-4o-mini
  cai config --list`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := env.store()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch len(args) {
			case 2:
				if err := store.Set(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s=%s\n", args[0], args[1])
			case 1:
				settings, err := store.Load()
				if err != nil {
					return err
				}
				if _, ok := settings.Get(args[0]); !ok {
					return fmt.Errorf("%s is not set", args[0])
				}
				fmt.Fprintln(out, settings.Line(args[0]))
			default:
				if !list {
					_ = cmd.Usage()
					return errConfigUsage
				}
			}

			if list {
				settings, err := store.List()
				if err != nil {
					return err
				}
				if settings.Len() == 0 {
					log.Info().Str("path", store.Path()).Msg("No settings stored")
				}
				for _, k := range settings.Keys() {
					fmt.Fprintln(out, settings.Line(k))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "Print all settings")
	return cmd
}
