package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/vvatanabe/shiptracker"
)

func (f CommandFactory) CreateLSCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List every shipment in creation order",
		Long:  `List every shipment in creation order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			host, _, _, release, err := f.open(ctx, cmd, flgs, nil)
			if err != nil {
				return err
			}
			defer release()
			shipments, err := host.GetAllShipments(ctx)
			if err != nil {
				return err
			}
			printMessageWithData(f.stdout(), "", LSResult{Shipments: shipments})
			return nil
		},
	}
}

type LSResult struct {
	Shipments []shiptracker.Shipment `json:"shipments"`
}

func init() {
	c := defaultCommandFactory.CreateLSCommand(flgs)
	setDefaultFlags(c, flgs)
	root.AddCommand(c)
}
