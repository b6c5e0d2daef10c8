package repository

import (
	"context"
	"fmt"
	"time"

	"oficina_quotes/internal/domain/entities"
	"oficina_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const defaultServiceOrdersTableName = "service_orders"

// orderLineItem stores both line variants; "type" picks the variant on read.
type orderLineItem struct {
	Type      string `dynamodbav:"type"`
	ServiceID string `dynamodbav:"service_id,omitempty"`
	PartID    string `dynamodbav:"part_id,omitempty"`
	Name      string `dynamodbav:"name,omitempty"`
	Price     string `dynamodbav:"price"`
	Quantity  int    `dynamodbav:"quantity"`
}

type serviceOrderItem struct {
	ID                string          `dynamodbav:"id"`
	OrderNumber       string          `dynamodbav:"order_number"`
	Status            string          `dynamodbav:"status"`
	Items             []orderLineItem `dynamodbav:"items"`
	BookingID         string          `dynamodbav:"booking_id,omitempty"`
	WaitingApprovalAt string          `dynamodbav:"waiting_approval_at,omitempty"`
	UpdatedAt         string          `dynamodbav:"updated_at,omitempty"`
}

// ServiceOrderDynamoRepository reads service orders and writes the status
// fields the quote flow owns.
//
// Table requirements:
//   - PK: id (string)
type ServiceOrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IServiceOrderRepository = (*ServiceOrderDynamoRepository)(nil)

func NewServiceOrderDynamoRepository(ddb *dynamodb.Client) *ServiceOrderDynamoRepository {
	return &ServiceOrderDynamoRepository{
		ddb:       ddb,
		tableName: serviceOrdersTableName(),
	}
}

func serviceOrdersTableName() string {
	return getenvDefault("SERVICE_ORDERS_TABLE", defaultServiceOrdersTableName)
}

func (r *ServiceOrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.ServiceOrder{}, nil
	}
	return unmarshalServiceOrder(out.Item)
}

func (r *ServiceOrderDynamoRepository) SetStatus(ctx context.Context, id string, update entities.ServiceOrderStatusUpdate) (entities.ServiceOrder, error) {
	expr := "SET #status = :status, #updated_at = :now"
	values := map[string]types.AttributeValue{
		":status": &types.AttributeValueMemberS{Value: string(update.Status)},
		":now":    &types.AttributeValueMemberS{Value: formatTime(time.Now())},
	}
	names := map[string]string{
		"#status":     "status",
		"#updated_at": "updated_at",
	}
	switch {
	case update.ClearWaitingApprovalAt:
		expr += " REMOVE #waiting_approval_at"
		names["#waiting_approval_at"] = "waiting_approval_at"
	case update.WaitingApprovalAt != nil:
		expr += ", #waiting_approval_at = :waiting"
		names["#waiting_approval_at"] = "waiting_approval_at"
		values[":waiting"] = &types.AttributeValueMemberS{Value: formatTime(*update.WaitingApprovalAt)}
	}

	attrs, err := conditionalUpdate(ctx, r.ddb, r.tableName, id, "attribute_exists(#id)", expr, values, names)
	if err != nil || len(attrs) == 0 {
		return entities.ServiceOrder{}, err
	}
	return unmarshalServiceOrder(attrs)
}

func unmarshalServiceOrder(av map[string]types.AttributeValue) (entities.ServiceOrder, error) {
	var it serviceOrderItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.ServiceOrder{}, err
	}
	return fromServiceOrderItem(it)
}

func fromServiceOrderItem(it serviceOrderItem) (entities.ServiceOrder, error) {
	items := make([]entities.OrderItem, 0, len(it.Items))
	for i, l := range it.Items {
		line, err := fromOrderLineItem(l)
		if err != nil {
			return entities.ServiceOrder{}, fmt.Errorf("service order %s item %d: %w", it.ID, i, err)
		}
		items = append(items, line)
	}

	order := entities.ServiceOrder{
		ID:          it.ID,
		OrderNumber: it.OrderNumber,
		Status:      entities.ServiceOrderStatus(it.Status),
		Items:       items,
		BookingID:   it.BookingID,
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
	if it.WaitingApprovalAt != "" {
		at := parseTime(it.WaitingApprovalAt)
		order.WaitingApprovalAt = &at
	}
	return order, nil
}

func fromOrderLineItem(l orderLineItem) (entities.OrderItem, error) {
	price := decimalFromString(l.Price)
	switch entities.QuoteItemType(l.Type) {
	case entities.QuoteItemService:
		return entities.ServiceLine{ServiceID: l.ServiceID, Name: l.Name, Price: price, Quantity: l.Quantity}, nil
	case entities.QuoteItemPart:
		return entities.PartLine{PartID: l.PartID, Name: l.Name, Price: price, Quantity: l.Quantity}, nil
	default:
		return nil, fmt.Errorf("unknown line type %q", l.Type)
	}
}

func toOrderLineItem(item entities.OrderItem) orderLineItem {
	switch l := item.(type) {
	case entities.ServiceLine:
		return orderLineItem{Type: string(entities.QuoteItemService), ServiceID: l.ServiceID, Name: l.Name, Price: l.Price.String(), Quantity: l.Quantity}
	case entities.PartLine:
		return orderLineItem{Type: string(entities.QuoteItemPart), PartID: l.PartID, Name: l.Name, Price: l.Price.String(), Quantity: l.Quantity}
	}
	return orderLineItem{Price: decimal.Zero.String()}
}

func toServiceOrderItem(o entities.ServiceOrder) serviceOrderItem {
	lines := make([]orderLineItem, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, toOrderLineItem(it))
	}
	it := serviceOrderItem{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Status:      string(o.Status),
		Items:       lines,
		BookingID:   o.BookingID,
		UpdatedAt:   formatTime(o.UpdatedAt),
	}
	if o.WaitingApprovalAt != nil {
		it.WaitingApprovalAt = formatTime(*o.WaitingApprovalAt)
	}
	return it
}
