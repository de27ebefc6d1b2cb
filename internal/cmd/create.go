package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vvatanabe/shiptracker"
)

func (f CommandFactory) CreateCreateCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Append a shipment to the ledger",
		Long:  `Append a shipment to the ledger. The shipment gets the next id and the status Created.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			host, _, _, release, err := f.open(ctx, cmd, flgs, nil)
			if err != nil {
				return err
			}
			defer release()
			created, err := host.CreateShipment(ctx, &shiptracker.CreateShipmentInput{
				ProductName:         flgs.ProductName,
				ProductDescription:  flgs.ProductDescription,
				LocationOrigin:      flgs.LocationOrigin,
				LocationDestination: flgs.LocationDestination,
			})
			if err != nil {
				return err
			}
			printMessageWithData(f.stdout(), fmt.Sprintf("Shipment [%d] is created:\n", created.ID), created)
			return nil
		},
	}
}

func init() {
	c := defaultCommandFactory.CreateCreateCommand(flgs)
	setDefaultFlags(c, flgs)
	c.Flags().StringVar(&flgs.ProductName, flagMap.ProductName.Name, flagMap.ProductName.Value, flagMap.ProductName.Usage)
	c.Flags().StringVar(&flgs.ProductDescription, flagMap.ProductDescription.Name, flagMap.ProductDescription.Value, flagMap.ProductDescription.Usage)
	c.Flags().StringVar(&flgs.LocationOrigin, flagMap.LocationOrigin.Name, flagMap.LocationOrigin.Value, flagMap.LocationOrigin.Usage)
	c.Flags().StringVar(&flgs.LocationDestination, flagMap.LocationDestination.Name, flagMap.LocationDestination.Value, flagMap.LocationDestination.Usage)
	root.AddCommand(c)
}
