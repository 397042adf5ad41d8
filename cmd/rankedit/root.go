package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func newRootCmd() *cobra.Command {
	var opts appOptions

	root := &cobra.Command{
		Use:           "rankedit",
		Short:         "Interactive rank roster editor with undo/redo",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			a.logger.Info("Starting rank editor",
				zap.String("app", a.cfg.App.Name),
				zap.String("env", a.cfg.App.Env),
				zap.Int("max_undo", a.service.History().Capacity()),
			)

			in := cmd.InOrStdin()
			if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				state, err := term.MakeRaw(int(f.Fd()))
				if err != nil {
					return err
				}
				defer term.Restore(int(f.Fd()), state)
			}

			sh := newShell(a.service, in, cmd.OutOrStdout(), a.logger)
			return sh.Run(a.ctx)
		},
	}

	root.Flags().StringVarP(&opts.configFile, "config", "c", "", "config file (default ./config.toml or ~/.rankedit/config.toml)")
	root.Flags().StringVar(&opts.logLevel, "log-level", "", "override log.level (debug, info, warn, error, off)")
	root.Flags().StringVar(&opts.journal, "journal", "", "append every roster and history event to this file as JSON lines")
	root.Flags().BoolVar(&opts.noRenumber, "no-renumber", false, "keep pay band names when a parent's bands change")

	return root
}
