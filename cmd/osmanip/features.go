package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newFeaturesCmd(a *app) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "features",
		Short: "List supported feature names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFeatures(a, plain, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print names without styling")
	return cmd
}

func runFeatures(a *app, plain bool, out io.Writer) error {
	if !plain {
		if _, err := fmt.Fprintf(out, "color mode %s\n", a.registry.ColorMode()); err != nil {
			return err
		}
	}
	for _, name := range a.registry.Names() {
		line := name
		if !plain {
			s, err := a.registry.Format(name, name)
			if err != nil {
				return err
			}
			params, _ := a.registry.Params(name)
			line = fmt.Sprintf("%-12s %s", params, s)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
