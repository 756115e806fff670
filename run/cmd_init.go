package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xiaxiaoyunyl36/3PG-model/config"
)

var force bool

var initCmd = &cobra.Command{
	Use:   "init <control.yaml>",
	Short: "Write a reference control file to edit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fp := args[0]
		if _, err := os.Stat(fp); err == nil && !force {
			return fmt.Errorf("%s exists (use --force to overwrite)", fp)
		}
		c := config.Reference()
		c.IO.Input = "climate.txt"
		return c.Write(fp)
	},
}

func init() {
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
}
