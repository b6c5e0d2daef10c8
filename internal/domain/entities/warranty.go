package entities

// WarrantyPart is a part covered by a warranty; it is always billed at 0.
type WarrantyPart struct {
	PartID   string `json:"part_id"`
	PartName string `json:"part_name"`
	Quantity int    `json:"quantity"`
}

// Warranty is optional coverage linked to a booking.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (booking_id-index): booking_id
type Warranty struct {
	ID            string         `json:"id"`
	BookingID     string         `json:"booking_id"`
	WarrantyParts []WarrantyPart `json:"warranty_parts"`
}
