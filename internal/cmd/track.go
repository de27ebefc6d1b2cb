package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (f CommandFactory) CreateTrackCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "track",
		Short: "Print the shipment with the given id and its current status",
		Long:  `Print the shipment with the given id and its current status.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			host, _, _, release, err := f.open(ctx, cmd, flgs, nil)
			if err != nil {
				return err
			}
			defer release()
			shipment, found, err := host.TrackShipment(ctx, flgs.ID)
			if err != nil {
				return err
			}
			if !found {
				printShipmentNotFound(f.stdout(), flgs.ID)
				return nil
			}
			printMessageWithData(f.stdout(), fmt.Sprintf("Shipment's [%d] record dump:\n", flgs.ID), shipment)
			return nil
		},
	}
}

func init() {
	c := defaultCommandFactory.CreateTrackCommand(flgs)
	setDefaultFlags(c, flgs)
	c.Flags().IntVar(&flgs.ID, flagMap.ID.Name, flagMap.ID.Value, flagMap.ID.Usage)
	root.AddCommand(c)
}
