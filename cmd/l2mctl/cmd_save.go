package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <switch>",
		Short: "Copy the running config to startup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, sink, err := openConnector(ctx, args[0])
			if err != nil {
				return err
			}
			defer sink.Close()
			defer c.Close()

			if err := c.GetBasic(ctx); err != nil {
				return err
			}
			if err := c.SaveConfig(ctx); err != nil {
				return err
			}
			fmt.Printf("%s: running config saved\n", args[0])
			printWarnings(c)
			return nil
		},
	}
}
