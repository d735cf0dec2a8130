package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the CLI entry point. With no arguments it opens the
// interactive menu; with `<workflow> <account-id>` it runs one headless
// generate-and-upload cycle, exiting non-zero on any failure.
func NewRootCommand() *cobra.Command {
	var baseDir string

	cmd := &cobra.Command{
		Use:          "autoshorts [workflow] [account-id]",
		Short:        "Content automation for faceless short-form video channels",
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(baseDir)
			if err != nil {
				return err
			}
			switch len(args) {
			case 0:
				return app.RunMenu(cmd.Context())
			case 2:
				name := strings.ToLower(strings.TrimSpace(args[0]))
				return app.RunHeadless(cmd.Context(), name, strings.TrimSpace(args[1]))
			default:
				return fmt.Errorf("usage: autoshorts <workflow> <account-id>")
			}
		},
	}

	cmd.Flags().StringVar(&baseDir, "dir", ".",
		"base directory holding config.json, client_secret.json and caches")
	return cmd
}
