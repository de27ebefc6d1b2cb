package test

import (
	"errors"
	"fmt"

	"github.com/vvatanabe/shiptracker"
)

var ErrorTest = errors.New("test")

func NewCreateShipmentInput(k int) *shiptracker.CreateShipmentInput {
	return &shiptracker.CreateShipmentInput{
		ProductName:         fmt.Sprintf("Product-%d", k),
		ProductDescription:  fmt.Sprintf("Description of product %d", k),
		LocationOrigin:      fmt.Sprintf("Origin-%d", k),
		LocationDestination: fmt.Sprintf("Destination-%d", k),
	}
}

func NewShipment(k int) shiptracker.Shipment {
	in := NewCreateShipmentInput(k)
	return shiptracker.Shipment{
		ID:                  k,
		ProductName:         in.ProductName,
		ProductDescription:  in.ProductDescription,
		LocationOrigin:      in.LocationOrigin,
		LocationDestination: in.LocationDestination,
		Status:              shiptracker.StatusCreated,
	}
}

func GenerateShipments(count int) []shiptracker.Shipment {
	shipments := make([]shiptracker.Shipment, count)
	for i := 0; i < count; i++ {
		shipments[i] = NewShipment(i)
	}
	return shipments
}
