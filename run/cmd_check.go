package main

import (
	"fmt"

	"github.com/spf13/cobra"

	threepg "github.com/xiaxiaoyunyl36/3PG-model"
	"github.com/xiaxiaoyunyl36/3PG-model/config"
	"github.com/xiaxiaoyunyl36/3PG-model/forcing"
)

var checkCmd = &cobra.Command{
	Use:   "check <control.yaml>...",
	Short: "Validate control files and their climate coverage",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, a := range args {
			if err := check(cmd, a); err != nil {
				return err
			}
		}
		return nil
	},
}

func check(cmd *cobra.Command, fp string) error {
	c, err := config.Load(fp)
	if err != nil {
		return err
	}
	age0, n, err := threepg.Horizon(c)
	if err != nil {
		return fmt.Errorf("%s: %w", fp, err)
	}
	if _, err := threepg.Select(c.Output.Variables); err != nil {
		return fmt.Errorf("%s: %w", fp, err)
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s: stand age %.3f, %d months\n", fp, age0, n)
	if c.IO.Input == "" {
		return nil
	}
	clim, err := forcing.Open(c.IO.Input)
	if err != nil {
		return fmt.Errorf("%s: %w", fp, err)
	}
	if need := c.TimeRange.ClimateRow(n) + 1; n > 0 && need > clim.Len() {
		return fmt.Errorf("%s: %w: climate has %d rows, run needs %d", fp, forcing.ErrOutOfRange, clim.Len(), need)
	}
	fmt.Fprintf(w, "%s: climate %s, %d rows\n", fp, c.IO.Input, clim.Len())
	return nil
}
