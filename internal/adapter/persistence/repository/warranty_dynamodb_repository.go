package repository

import (
	"context"

	"oficina_quotes/internal/domain/entities"
	"oficina_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultWarrantiesTableName = "warranties"
	warrantiesBookingIDIndex   = "booking_id-index"
)

type warrantyPartItem struct {
	PartID   string `dynamodbav:"part_id"`
	PartName string `dynamodbav:"part_name"`
	Quantity int    `dynamodbav:"quantity"`
}

type warrantyItem struct {
	ID            string             `dynamodbav:"id"`
	BookingID     string             `dynamodbav:"booking_id"`
	WarrantyParts []warrantyPartItem `dynamodbav:"warranty_parts"`
}

// WarrantyDynamoRepository looks warranties up by booking.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: booking_id-index (PK: booking_id)
type WarrantyDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IWarrantyRepository = (*WarrantyDynamoRepository)(nil)

func NewWarrantyDynamoRepository(ddb *dynamodb.Client) *WarrantyDynamoRepository {
	return &WarrantyDynamoRepository{
		ddb:       ddb,
		tableName: warrantiesTableName(),
	}
}

func warrantiesTableName() string {
	return getenvDefault("WARRANTIES_TABLE", defaultWarrantiesTableName)
}

func (r *WarrantyDynamoRepository) FindByBookingID(ctx context.Context, bookingID string) (entities.Warranty, bool, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(warrantiesBookingIDIndex),
		KeyConditionExpression: aws.String("booking_id = :bid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":bid": &types.AttributeValueMemberS{Value: bookingID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Warranty{}, false, err
	}
	if len(out.Items) == 0 {
		return entities.Warranty{}, false, nil
	}

	var it warrantyItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Warranty{}, false, err
	}
	return fromWarrantyItem(it), true, nil
}

func fromWarrantyItem(it warrantyItem) entities.Warranty {
	parts := make([]entities.WarrantyPart, 0, len(it.WarrantyParts))
	for _, p := range it.WarrantyParts {
		parts = append(parts, entities.WarrantyPart{PartID: p.PartID, PartName: p.PartName, Quantity: p.Quantity})
	}
	return entities.Warranty{ID: it.ID, BookingID: it.BookingID, WarrantyParts: parts}
}

func toWarrantyItem(w entities.Warranty) warrantyItem {
	parts := make([]warrantyPartItem, 0, len(w.WarrantyParts))
	for _, p := range w.WarrantyParts {
		parts = append(parts, warrantyPartItem{PartID: p.PartID, PartName: p.PartName, Quantity: p.Quantity})
	}
	return warrantyItem{ID: w.ID, BookingID: w.BookingID, WarrantyParts: parts}
}
