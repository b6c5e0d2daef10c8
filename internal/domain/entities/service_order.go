package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceOrderStatus is owned by the order-management flow; the quote engine
// only reads it and moves it between the approval-related states.
type ServiceOrderStatus string

const (
	ServiceOrderStatusCreated                 ServiceOrderStatus = "created"
	ServiceOrderStatusWaitingInspection       ServiceOrderStatus = "waiting_inspection"
	ServiceOrderStatusInspectionCompleted     ServiceOrderStatus = "inspection_completed"
	ServiceOrderStatusWaitingCustomerApproval ServiceOrderStatus = "waiting_customer_approval"
	ServiceOrderStatusApproved                ServiceOrderStatus = "approved"
	ServiceOrderStatusScheduled               ServiceOrderStatus = "scheduled"
	ServiceOrderStatusServicing               ServiceOrderStatus = "servicing"
	ServiceOrderStatusCompleted               ServiceOrderStatus = "completed"
	ServiceOrderStatusCancelled               ServiceOrderStatus = "cancelled"
)

// CanBeQuoted reports whether a new quote may be built for an order in this status.
func (s ServiceOrderStatus) CanBeQuoted() bool {
	return s == ServiceOrderStatusInspectionCompleted || s == ServiceOrderStatusWaitingCustomerApproval
}

// OrderItem is a service order line: either a ServiceLine or a PartLine.
type OrderItem interface {
	ItemType() QuoteItemType
	isOrderItem()
}

// ServiceLine is a labour/service line.
type ServiceLine struct {
	ServiceID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

// PartLine is a part line. Name is an optional snapshot; the Part record is
// authoritative for the display name.
type PartLine struct {
	PartID   string
	Name     string
	Price    decimal.Decimal
	Quantity int
}

func (ServiceLine) ItemType() QuoteItemType { return QuoteItemService }
func (PartLine) ItemType() QuoteItemType    { return QuoteItemPart }
func (ServiceLine) isOrderItem()            {}
func (PartLine) isOrderItem()               {}

// ServiceOrder (ordem de serviço) aggregates the billable lines of a job.
type ServiceOrder struct {
	ID                string
	OrderNumber       string
	Status            ServiceOrderStatus
	Items             []OrderItem
	BookingID         string
	WaitingApprovalAt *time.Time
	UpdatedAt         time.Time
}

// PartLines returns the part lines of the order in their original order.
func (o ServiceOrder) PartLines() []PartLine {
	out := make([]PartLine, 0, len(o.Items))
	for _, it := range o.Items {
		if p, ok := it.(PartLine); ok {
			out = append(out, p)
		}
	}
	return out
}

// Label is how the order is named in user-facing messages.
func (o ServiceOrder) Label() string {
	if o.OrderNumber != "" {
		return o.OrderNumber
	}
	return o.ID
}

// ServiceOrderStatusUpdate describes a status write issued by the quote engine.
type ServiceOrderStatusUpdate struct {
	Status                 ServiceOrderStatus
	WaitingApprovalAt      *time.Time
	ClearWaitingApprovalAt bool
}
