package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (f CommandFactory) CreateInitCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Check that the ledger is empty and ready for its first shipment",
		Long:  `Check that the ledger is empty and ready for its first shipment.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			host, cfg, _, release, err := f.open(ctx, cmd, flgs, nil)
			if err != nil {
				return err
			}
			defer release()
			if err := host.Init(ctx); err != nil {
				return err
			}
			fmt.Fprintf(f.stdout(), "Ledger [%s] is initialized!\n", cfg.Ledger)
			return nil
		},
	}
}

func init() {
	c := defaultCommandFactory.CreateInitCommand(flgs)
	setDefaultFlags(c, flgs)
	root.AddCommand(c)
}
