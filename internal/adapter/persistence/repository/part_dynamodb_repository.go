package repository

import (
	"context"
	"time"

	"oficina_quotes/internal/domain/entities"
	"oficina_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPartsTableName = "parts"
	partsNameIndex        = "name-index"
)

type partItem struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	Quantity  int    `dynamodbav:"quantity"`
	Price     string `dynamodbav:"price"`
	UpdatedAt string `dynamodbav:"updated_at,omitempty"`
}

// PartDynamoRepository reads the parts catalogue and moves stock.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: name-index (PK: name)
type PartDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPartRepository = (*PartDynamoRepository)(nil)

func NewPartDynamoRepository(ddb *dynamodb.Client) *PartDynamoRepository {
	return &PartDynamoRepository{
		ddb:       ddb,
		tableName: partsTableName(),
	}
}

func partsTableName() string {
	return getenvDefault("PARTS_TABLE", defaultPartsTableName)
}

func (r *PartDynamoRepository) GetByID(ctx context.Context, id string) (entities.Part, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Part{}, err
	}
	if len(out.Item) == 0 {
		return entities.Part{}, nil
	}
	return unmarshalPart(out.Item)
}

func (r *PartDynamoRepository) GetByName(ctx context.Context, name string) (entities.Part, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String(partsNameIndex),
		KeyConditionExpression:   aws.String("#name = :name"),
		ExpressionAttributeNames: map[string]string{"#name": "name"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name": &types.AttributeValueMemberS{Value: name},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Part{}, err
	}
	if len(out.Items) == 0 {
		return entities.Part{}, nil
	}
	return unmarshalPart(out.Items[0])
}

// ConditionalDecrement only applies while the stored quantity covers amount.
func (r *PartDynamoRepository) ConditionalDecrement(ctx context.Context, id string, amount int) (entities.Part, error) {
	return r.adjust(ctx, id,
		"attribute_exists(#id) AND #quantity >= :n",
		"SET #quantity = #quantity - :n, #updated_at = :now",
		amount)
}

func (r *PartDynamoRepository) Increment(ctx context.Context, id string, amount int) (entities.Part, error) {
	return r.adjust(ctx, id,
		"attribute_exists(#id)",
		"SET #quantity = #quantity + :n, #updated_at = :now",
		amount)
}

func (r *PartDynamoRepository) adjust(ctx context.Context, id, condition, expr string, amount int) (entities.Part, error) {
	attrs, err := conditionalUpdate(ctx, r.ddb, r.tableName, id, condition, expr,
		map[string]types.AttributeValue{
			":n":   numberValue(amount),
			":now": &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
		map[string]string{
			"#quantity":   "quantity",
			"#updated_at": "updated_at",
		})
	if err != nil || len(attrs) == 0 {
		return entities.Part{}, err
	}
	return unmarshalPart(attrs)
}

func unmarshalPart(av map[string]types.AttributeValue) (entities.Part, error) {
	var it partItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Part{}, err
	}
	return entities.Part{
		ID:       it.ID,
		Name:     it.Name,
		Quantity: it.Quantity,
		Price:    decimalFromString(it.Price),
	}, nil
}
