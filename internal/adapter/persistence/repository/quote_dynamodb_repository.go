package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"oficina_quotes/internal/domain/entities"
	"oficina_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultQuotesTableName     = "quotes"
	defaultQuoteSlotsTableName = "quote_order_slots"
	quotesServiceOrderIndex    = "service_order_id-index"
)

type quoteLineItem struct {
	Type     string `dynamodbav:"type"`
	PartID   string `dynamodbav:"part_id,omitempty"`
	Name     string `dynamodbav:"name"`
	Quantity int    `dynamodbav:"quantity"`
	Price    string `dynamodbav:"price"`
}

type quoteItem struct {
	ID                 string          `dynamodbav:"id"`
	ServiceOrderID     string          `dynamodbav:"service_order_id"`
	ServiceOrderNumber string          `dynamodbav:"service_order_number,omitempty"`
	Items              []quoteLineItem `dynamodbav:"items"`
	Subtotal           string          `dynamodbav:"subtotal"`
	Tax                string          `dynamodbav:"tax"`
	Status             string          `dynamodbav:"status"`
	RejectedReason     string          `dynamodbav:"rejected_reason,omitempty"`
	CreatedAt          string          `dynamodbav:"created_at"`
	UpdatedAt          string          `dynamodbav:"updated_at"`
}

type quoteSlotItem struct {
	ServiceOrderID string `dynamodbav:"service_order_id"`
	QuoteID        string `dynamodbav:"quote_id"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - quotes: PK id (string), GSI service_order_id-index (PK: service_order_id)
//   - quote_order_slots: PK service_order_id (string)
//
// A slot row names the single quote a service order currently holds. Quotes
// and slots are written in one transaction, which is what keeps at most one
// live quote per order when two requests race.
type QuoteDynamoRepository struct {
	ddb        *dynamodb.Client
	tableName  string
	slotsTable string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:        ddb,
		tableName:  quotesTableName(),
		slotsTable: quoteSlotsTableName(),
	}
}

func quotesTableName() string {
	return getenvDefault("QUOTES_TABLE", defaultQuotesTableName)
}

func quoteSlotsTableName() string {
	return getenvDefault("QUOTE_SLOTS_TABLE", defaultQuoteSlotsTableName)
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	quoteAV, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}
	slotAV, err := attributevalue.MarshalMap(quoteSlotItem{ServiceOrderID: q.ServiceOrderID, QuoteID: q.ID})
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.slotsTable),
				Item:                     slotAV,
				ConditionExpression:      aws.String("attribute_not_exists(#so)"),
				ExpressionAttributeNames: map[string]string{"#so": "service_order_id"},
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     quoteAV,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
		},
	})
	if err != nil {
		if isTransactionConditionFailed(err) {
			return entities.Quote{}, interfaces.ErrDuplicateQuote
		}
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) FindByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}
	return unmarshalQuote(out.Item)
}

func (r *QuoteDynamoRepository) FindOne(ctx context.Context, filter interfaces.QuoteFilter) (entities.Quote, error) {
	found, err := r.Find(ctx, filter)
	if err != nil || len(found) == 0 {
		return entities.Quote{}, err
	}
	return found[0], nil
}

// Find queries the service order index when the filter names an order and
// scans otherwise. Results are ordered newest first.
func (r *QuoteDynamoRepository) Find(ctx context.Context, filter interfaces.QuoteFilter) ([]entities.Quote, error) {
	filterExpr, names, values := quoteFilterExpression(filter)

	var pages [][]map[string]types.AttributeValue
	if filter.ServiceOrderID != "" {
		values[":so"] = &types.AttributeValueMemberS{Value: filter.ServiceOrderID}
		input := &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(quotesServiceOrderIndex),
			KeyConditionExpression:    aws.String("service_order_id = :so"),
			ExpressionAttributeValues: values,
		}
		if filterExpr != "" {
			input.FilterExpression = aws.String(filterExpr)
			input.ExpressionAttributeNames = names
		}
		p := dynamodb.NewQueryPaginator(r.ddb, input)
		for p.HasMorePages() {
			out, err := p.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			pages = append(pages, out.Items)
		}
	} else {
		input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
		if filterExpr != "" {
			input.FilterExpression = aws.String(filterExpr)
			input.ExpressionAttributeNames = names
			input.ExpressionAttributeValues = values
		}
		p := dynamodb.NewScanPaginator(r.ddb, input)
		for p.HasMorePages() {
			out, err := p.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			pages = append(pages, out.Items)
		}
	}

	out := make([]entities.Quote, 0)
	for _, items := range pages {
		for _, av := range items {
			q, err := unmarshalQuote(av)
			if err != nil {
				return nil, err
			}
			// the index is eventually consistent; re-check before trusting it
			if filter.Matches(q) {
				out = append(out, q)
			}
		}
	}
	interfaces.SortNewestFirst(out)
	return out, nil
}

func (r *QuoteDynamoRepository) FindPage(ctx context.Context, filter interfaces.QuoteFilter, page interfaces.PageRequest) ([]entities.Quote, error) {
	all, err := r.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return page.Slice(all), nil
}

func (r *QuoteDynamoRepository) CountDocuments(ctx context.Context, filter interfaces.QuoteFilter) (int, error) {
	all, err := r.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

// DeleteMany removes each matching quote together with its slot. A slot that
// already names another quote is left untouched.
func (r *QuoteDynamoRepository) DeleteMany(ctx context.Context, filter interfaces.QuoteFilter) (int, error) {
	matches, err := r.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, q := range matches {
		_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
			TransactItems: []types.TransactWriteItem{
				{Delete: &types.Delete{
					TableName: aws.String(r.tableName),
					Key:       idKey(q.ID),
				}},
				{Delete: &types.Delete{
					TableName: aws.String(r.slotsTable),
					Key: map[string]types.AttributeValue{
						"service_order_id": &types.AttributeValueMemberS{Value: q.ServiceOrderID},
					},
					ConditionExpression:       aws.String("attribute_not_exists(#so) OR #quote_id = :qid"),
					ExpressionAttributeNames:  map[string]string{"#so": "service_order_id", "#quote_id": "quote_id"},
					ExpressionAttributeValues: map[string]types.AttributeValue{":qid": &types.AttributeValueMemberS{Value: q.ID}},
				}},
			},
		})
		if err != nil {
			if !isTransactionConditionFailed(err) {
				return deleted, err
			}
			if _, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
				TableName: aws.String(r.tableName),
				Key:       idKey(q.ID),
			}); err != nil {
				return deleted, err
			}
		}
		deleted++
	}
	return deleted, nil
}

func (r *QuoteDynamoRepository) Transition(ctx context.Context, id string, from, to entities.QuoteStatus, rejectedReason string) (entities.Quote, error) {
	expr := "SET #status = :to, #updated_at = :now"
	values := map[string]types.AttributeValue{
		":from": &types.AttributeValueMemberS{Value: string(from)},
		":to":   &types.AttributeValueMemberS{Value: string(to)},
		":now":  &types.AttributeValueMemberS{Value: formatTime(time.Now())},
	}
	names := map[string]string{
		"#status":     "status",
		"#updated_at": "updated_at",
	}
	if to == entities.QuoteStatusRejected {
		expr += ", #rejected_reason = :reason"
		values[":reason"] = &types.AttributeValueMemberS{Value: rejectedReason}
		names["#rejected_reason"] = "rejected_reason"
	}

	attrs, err := conditionalUpdate(ctx, r.ddb, r.tableName, id,
		"attribute_exists(#id) AND #status = :from", expr, values, names)
	if err != nil || len(attrs) == 0 {
		return entities.Quote{}, err
	}
	return unmarshalQuote(attrs)
}

// quoteFilterExpression renders the non-key parts of a filter. The service
// order id itself is the index key and is handled by the caller.
func quoteFilterExpression(filter interfaces.QuoteFilter) (string, map[string]string, map[string]types.AttributeValue) {
	var clauses []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, 0, len(filter.Statuses))
		for i, s := range filter.Statuses {
			key := fmt.Sprintf(":st%d", i)
			placeholders = append(placeholders, key)
			values[key] = &types.AttributeValueMemberS{Value: string(s)}
		}
		names["#status"] = "status"
		clauses = append(clauses, "#status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if filter.ExcludeServiceOrderID != "" {
		names["#so"] = "service_order_id"
		values[":exclude"] = &types.AttributeValueMemberS{Value: filter.ExcludeServiceOrderID}
		clauses = append(clauses, "#so <> :exclude")
	}
	return strings.Join(clauses, " AND "), names, values
}

func unmarshalQuote(av map[string]types.AttributeValue) (entities.Quote, error) {
	var it quoteItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func toQuoteItem(q entities.Quote) quoteItem {
	lines := make([]quoteLineItem, 0, len(q.Items))
	for _, it := range q.Items {
		lines = append(lines, quoteLineItem{
			Type:     string(it.Type),
			PartID:   it.PartID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price.String(),
		})
	}
	return quoteItem{
		ID:                 q.ID,
		ServiceOrderID:     q.ServiceOrderID,
		ServiceOrderNumber: q.ServiceOrderNumber,
		Items:              lines,
		Subtotal:           q.Subtotal.String(),
		Tax:                q.Tax.String(),
		Status:             string(q.Status),
		RejectedReason:     q.RejectedReason,
		CreatedAt:          formatTime(q.CreatedAt),
		UpdatedAt:          formatTime(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	items := make([]entities.QuoteItem, 0, len(it.Items))
	for _, l := range it.Items {
		items = append(items, entities.QuoteItem{
			Type:     entities.QuoteItemType(l.Type),
			PartID:   l.PartID,
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    decimalFromString(l.Price),
		})
	}
	return entities.Quote{
		ID:                 it.ID,
		ServiceOrderID:     it.ServiceOrderID,
		ServiceOrderNumber: it.ServiceOrderNumber,
		Items:              items,
		Subtotal:           decimalFromString(it.Subtotal),
		Tax:                decimalFromString(it.Tax),
		Status:             entities.QuoteStatus(it.Status),
		RejectedReason:     it.RejectedReason,
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
	}
}
