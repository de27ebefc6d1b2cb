package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/vvatanabe/shiptracker"
)

func main() {
	ctx := context.Background()

	// ------------------------------
	// Create DynamoDB Store
	// ------------------------------
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		panic("failed to load aws config")
	}
	store, err := shiptracker.NewDynamoDBStoreFromConfig(cfg)
	if err != nil {
		panic("AWS session could not be established!")
	}

	// ------------------------------
	// Subscribe to notifications
	// ------------------------------
	broker := shiptracker.NewBroker(16)
	counter := &Counter{}
	sub := broker.Subscribe(16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for n := range sub.C {
			counter.Process(n)
		}
	}()

	// ------------------------------
	// Create and track a shipment
	// ------------------------------
	host := shiptracker.NewHost(store, shiptracker.WithPublisher(broker))
	created, err := host.CreateShipment(ctx, &shiptracker.CreateShipmentInput{
		ProductName:         "Widget",
		ProductDescription:  "Gadget",
		LocationOrigin:      "Factory",
		LocationDestination: "Warehouse",
	})
	if err != nil {
		panic("failed to create shipment")
	}
	if _, _, err := host.TrackShipment(ctx, created.ID); err != nil {
		panic("failed to track shipment")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop

	broker.Close()
	<-done
	fmt.Printf("received %d notifications\n", counter.Value)
}

type Counter struct {
	Value int
}

func (c *Counter) Process(n shiptracker.Notification) {
	c.Value++
	fmt.Printf("value: %d, notification: %s %+v\n", c.Value, n.Type, n.Event)
}
