package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/urmzd/sdfwot/pkg/convert"
	"github.com/urmzd/sdfwot/pkg/document"
)

func printCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "print <input>",
		Short: "Read an SDF or WoT file and print it",
		Long: `Print loads the file, checks it against the schema of its kind and writes
it back to stdout. Members the model does not know are dropped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(global)
			if err != nil {
				return err
			}

			kind, err := document.KindFromPath(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			svc := convert.NewService(document.NewLoader(), convert.WithIndent(cfg.Output.Indent))
			out, err := svc.Print(kind, data)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
