package interfaces

import (
	"context"

	"oficina_quotes/internal/domain/entities"
)

// IWarrantyRepository finds the warranty linked to a booking. The second
// return value is false when the booking has none.
type IWarrantyRepository interface {
	FindByBookingID(ctx context.Context, bookingID string) (entities.Warranty, bool, error)
}
