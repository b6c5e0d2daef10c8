package repository

import (
	"context"
	"errors"

	"oficina_quotes/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TableDefinitions describes every table the repositories expect, with the
// names resolved from the environment.
func TableDefinitions() []*dynamodb.CreateTableInput {
	return []*dynamodb.CreateTableInput{
		tableWithIndex(quotesTableName(), "service_order_id", quotesServiceOrderIndex),
		tableWithKey(quoteSlotsTableName(), "service_order_id"),
		tableWithIndex(partsTableName(), "name", partsNameIndex),
		tableWithKey(serviceOrdersTableName(), "id"),
		tableWithIndex(warrantiesTableName(), "booking_id", warrantiesBookingIDIndex),
	}
}

func tableWithKey(name, hashKey string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName:   aws.String(name),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(hashKey), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(hashKey), KeyType: types.KeyTypeHash},
		},
	}
}

func tableWithIndex(name, indexKey, indexName string) *dynamodb.CreateTableInput {
	in := tableWithKey(name, "id")
	in.AttributeDefinitions = append(in.AttributeDefinitions, types.AttributeDefinition{
		AttributeName: aws.String(indexKey),
		AttributeType: types.ScalarAttributeTypeS,
	})
	in.GlobalSecondaryIndexes = []types.GlobalSecondaryIndex{{
		IndexName: aws.String(indexName),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(indexKey), KeyType: types.KeyTypeHash},
		},
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}}
	return in
}

// EnsureTables creates the missing tables and reports which ones were created.
func EnsureTables(ctx context.Context, ddb *dynamodb.Client) ([]string, error) {
	var created []string
	for _, def := range TableDefinitions() {
		_, err := ddb.CreateTable(ctx, def)
		if err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				continue
			}
			return created, err
		}
		created = append(created, aws.ToString(def.TableName))
	}
	return created, nil
}

// Seeder writes reference data (parts, service orders, warranties) owned by
// other services. It is used to prime local environments.
type Seeder struct {
	ddb *dynamodb.Client
}

func NewSeeder(ddb *dynamodb.Client) *Seeder {
	return &Seeder{ddb: ddb}
}

func (s *Seeder) PutPart(ctx context.Context, p entities.Part) error {
	return s.put(ctx, partsTableName(), partItem{
		ID:       p.ID,
		Name:     p.Name,
		Quantity: p.Quantity,
		Price:    p.Price.String(),
	})
}

func (s *Seeder) PutServiceOrder(ctx context.Context, o entities.ServiceOrder) error {
	return s.put(ctx, serviceOrdersTableName(), toServiceOrderItem(o))
}

func (s *Seeder) PutWarranty(ctx context.Context, w entities.Warranty) error {
	return s.put(ctx, warrantiesTableName(), toWarrantyItem(w))
}

func (s *Seeder) put(ctx context.Context, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	})
	return err
}
