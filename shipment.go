package shiptracker

// StatusCreated is the status every shipment carries from the moment it is created.
const StatusCreated = "Created"

// Shipment is a single record of the ledger. Once created it is never modified.
// Field order is the encode order for every representation of a shipment.
type Shipment struct {
	ID                  int    `json:"id" dynamodbav:"id"`
	ProductName         string `json:"product_name" dynamodbav:"product_name"`
	ProductDescription  string `json:"product_description" dynamodbav:"product_description"`
	LocationOrigin      string `json:"location_origin" dynamodbav:"location_origin"`
	LocationDestination string `json:"location_destination" dynamodbav:"location_destination"`
	Status              string `json:"status" dynamodbav:"status"`
}

// CreateShipmentInput represents the input parameters for creating a shipment.
// Every value is accepted as is, including empty strings.
type CreateShipmentInput struct {
	ProductName         string `json:"product_name"`
	ProductDescription  string `json:"product_description"`
	LocationOrigin      string `json:"location_origin"`
	LocationDestination string `json:"location_destination"`
}

func newShipment(id int, params *CreateShipmentInput) Shipment {
	return Shipment{
		ID:                  id,
		ProductName:         params.ProductName,
		ProductDescription:  params.ProductDescription,
		LocationOrigin:      params.LocationOrigin,
		LocationDestination: params.LocationDestination,
		Status:              StatusCreated,
	}
}
