package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and list the layer groups it defines",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		targets, err := buildTargets(cfg.Groups)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, t := range targets {
			fmt.Fprintf(out, "%s [%s]\n", t.Group.Name, t.Position.Link.Value())
			for i, l := range t.Group.Layers.Layers() {
				fmt.Fprintf(out, "  %d %s (%s)\n", i+1, l.Name, l.Type())
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
