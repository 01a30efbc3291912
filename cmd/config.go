package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fchimpan/gh-kusa-painter/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	var show bool
	c := &cobra.Command{
		Use:   "config",
		Short: "Create the config file with commented defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if show {
				fmt.Fprintln(a.deps.Stdout, a.configPath)
				return nil
			}
			if err := config.WriteTemplate(a.configPath); err != nil {
				return err
			}
			fmt.Fprintf(a.deps.Stdout, "wrote %s\n", a.configPath)
			return nil
		},
	}
	c.Flags().BoolVar(&show, "path", false, "only print the config path")
	return c
}
