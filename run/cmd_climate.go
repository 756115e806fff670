package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiaxiaoyunyl36/3PG-model/forcing"
)

var gobOut string

var climateCmd = &cobra.Command{
	Use:   "climate <file>",
	Short: "Summarise a monthly climate file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := forcing.Open(args[0])
		if err != nil {
			return err
		}
		t.CheckAndPrint(cmd.OutOrStdout())
		if gobOut != "" {
			if err := t.SaveGob(gobOut); err != nil {
				return err
			}
			logger.Info("climate cached", zap.String("file", gobOut), zap.Int("rows", t.Len()))
		}
		return nil
	},
}

func init() {
	climateCmd.Flags().StringVar(&gobOut, "gob", "", "save the table as a gob cache")
}
