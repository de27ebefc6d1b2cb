package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/vvatanabe/shiptracker"
)

type Interactive struct {
	Host *shiptracker.Host
	Out  io.Writer
}

func (c *Interactive) Run(ctx context.Context, command string, params []string) {
	switch command {
	case "h", "?", "help":
		c.help(ctx, params)
	case "init":
		c.initLedger(ctx, params)
	case "create":
		c.create(ctx, params)
	case "track", "id":
		c.track(ctx, params)
	case "ls":
		c.ls(ctx, params)
	default:
		fmt.Fprintln(c.Out, " ... unrecognized command!")
	}
}

func (c *Interactive) help(_ context.Context, _ []string) {
	fmt.Fprintln(c.Out, `... this is Interactive HELP!
  > init                                          [Check that the ledger is empty and ready for its first shipment]
  > create <name> <description> <origin> <dest>   [Append a shipment to the ledger; its status is Created]
  > track | id <id>                               [Print the shipment with the given id and its current status]
  > ls                                            [List every shipment in creation order]
  > quit | q                                      [Leave the interactive mode]`)
}

func (c *Interactive) initLedger(ctx context.Context, _ []string) {
	if err := c.Host.Init(ctx); err != nil {
		printError(c.Out, err)
		return
	}
	fmt.Fprintln(c.Out, "Ledger is initialized!")
}

func (c *Interactive) create(ctx context.Context, params []string) {
	if len(params) != 4 {
		printError(c.Out, "Usage: create <name> <description> <origin> <dest>")
		return
	}
	created, err := c.Host.CreateShipment(ctx, &shiptracker.CreateShipmentInput{
		ProductName:         params[0],
		ProductDescription:  params[1],
		LocationOrigin:      params[2],
		LocationDestination: params[3],
	})
	if err != nil {
		printError(c.Out, err)
		return
	}
	printMessageWithData(c.Out, fmt.Sprintf("Shipment [%d] is created:\n", created.ID), created)
}

func (c *Interactive) track(ctx context.Context, params []string) {
	if len(params) == 0 {
		printError(c.Out, "Usage: track <id>")
		return
	}
	id, err := strconv.Atoi(params[0])
	if err != nil {
		printError(c.Out, fmt.Sprintf("Shipment id must be an integer: %q", params[0]))
		return
	}
	shipment, found, err := c.Host.TrackShipment(ctx, id)
	if err != nil {
		printError(c.Out, err)
		return
	}
	if !found {
		printShipmentNotFound(c.Out, id)
		return
	}
	printMessageWithData(c.Out, fmt.Sprintf("Shipment's [%d] record dump:\n", id), shipment)
}

func (c *Interactive) ls(ctx context.Context, _ []string) {
	shipments, err := c.Host.GetAllShipments(ctx)
	if err != nil {
		printError(c.Out, err)
		return
	}
	if len(shipments) == 0 {
		fmt.Fprintln(c.Out, "Ledger is empty!")
		return
	}
	fmt.Fprintln(c.Out, "List of shipments:")
	for _, s := range shipments {
		fmt.Fprintf(c.Out, "* ID: %d, product: %s, status: %s\n", s.ID, s.ProductName, s.Status)
	}
}
