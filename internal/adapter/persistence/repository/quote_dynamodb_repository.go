package repository

import (
	"context"
	"sort"
	"strconv"

	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type quoteNumberItem struct {
	Number  string `dynamodbav:"number"`
	QuoteID string `dynamodbav:"quote_id"`
}

// QuoteDynamoRepository persists quotes and their history in DynamoDB.
//
// Table requirements:
//   - quotes: PK id (string)
//   - quote_history: PK id (string), GSI quote_id-index on quote_id
//   - quote_numbers: PK number (string); one item per issued number
//
// Every write goes through TransactWriteItems so the quote, its number
// reservation and its history entry commit together.
type QuoteDynamoRepository struct {
	ddb    *dynamodb.Client
	tables Tables
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client, tables Tables) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{ddb: ddb, tables: tables.withDefaults()}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote, entry entities.HistoryEntry) error {
	quoteAV, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return err
	}
	numberAV, err := attributevalue.MarshalMap(quoteNumberItem{Number: q.Number, QuoteID: q.ID})
	if err != nil {
		return err
	}
	historyAV, err := attributevalue.MarshalMap(toHistoryItem(entry))
	if err != nil {
		return err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.tables.Quotes),
				Item:                     quoteAV,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.tables.Numbers),
				Item:                     numberAV,
				ConditionExpression:      aws.String("attribute_not_exists(#number)"),
				ExpressionAttributeNames: map[string]string{"#number": "number"},
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.tables.History),
				Item:                     historyAV,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
		},
	})
	if cancelledByCondition(err, 1) {
		return entities.ErrDuplicateQuoteNumber
	}
	return err
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.Quotes),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) Transition(ctx context.Context, q entities.Quote, expectedVersion int64, entry entities.HistoryEntry) error {
	quoteAV, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return err
	}
	historyAV, err := attributevalue.MarshalMap(toHistoryItem(entry))
	if err != nil {
		return err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String(r.tables.Quotes),
				Item:                quoteAV,
				ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
				ExpressionAttributeNames: map[string]string{
					"#id":      "id",
					"#version": "version",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
				},
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.tables.History),
				Item:                     historyAV,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
		},
	})
	if cancelledByCondition(err, 0) {
		return entities.ErrVersionConflict
	}
	return err
}

// quoteScanInput pushes only the mode down as a filter expression. Status
// may be stored in a legacy spelling, so it is matched in memory after
// normalization together with every other criterion.
func quoteScanInput(table string, filter entities.QuoteFilter) *dynamodb.ScanInput {
	in := &dynamodb.ScanInput{
		TableName:      aws.String(table),
		ConsistentRead: aws.Bool(true),
	}
	if filter.Mode != "" {
		in.FilterExpression = aws.String("#mode = :mode")
		in.ExpressionAttributeNames = map[string]string{"#mode": "mode"}
		in.ExpressionAttributeValues = map[string]types.AttributeValue{
			":mode": &types.AttributeValueMemberS{Value: string(filter.Mode)},
		}
	}
	return in
}

// scanQuotes reads the whole table; the entity filter applied by the
// callers does the matching and ordering.
func (r *QuoteDynamoRepository) scanQuotes(ctx context.Context, filter entities.QuoteFilter) ([]entities.Quote, error) {
	in := quoteScanInput(r.tables.Quotes, filter)

	var quotes []entities.Quote
	p := dynamodb.NewScanPaginator(r.ddb, in)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []quoteItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			quotes = append(quotes, fromQuoteItem(it))
		}
	}
	return quotes, nil
}

func (r *QuoteDynamoRepository) Search(ctx context.Context, filter entities.QuoteFilter, page entities.Page) ([]entities.Quote, int64, error) {
	all, err := r.scanQuotes(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	matched := entities.FilterQuotes(all, filter)
	return page.Slice(matched), int64(len(matched)), nil
}

func (r *QuoteDynamoRepository) Count(ctx context.Context, filter entities.QuoteFilter) (entities.QuoteCounts, error) {
	all, err := r.scanQuotes(ctx, filter)
	if err != nil {
		return entities.QuoteCounts{}, err
	}
	return entities.TallyQuotes(all, filter), nil
}

func (r *QuoteDynamoRepository) ListHistory(ctx context.Context, quoteID string) ([]entities.HistoryEntry, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.History),
		IndexName:              aws.String(historyByQuoteIndex),
		KeyConditionExpression: aws.String("#quote_id = :quote_id"),
		ExpressionAttributeNames: map[string]string{
			"#quote_id": "quote_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":quote_id": &types.AttributeValueMemberS{Value: quoteID},
		},
	}

	var entries []entities.HistoryEntry
	p := dynamodb.NewQueryPaginator(r.ddb, in)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []historyItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			entries = append(entries, fromHistoryItem(it))
		}
	}
	// the index has no sort key
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Timestamp.Before(entries[j].Timestamp) })
	return entries, nil
}

func (r *QuoteDynamoRepository) LatestNumber(ctx context.Context, prefix string) (string, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:                aws.String(r.tables.Numbers),
		ConsistentRead:           aws.Bool(true),
		FilterExpression:         aws.String("begins_with(#number, :prefix)"),
		ProjectionExpression:     aws.String("#number"),
		ExpressionAttributeNames: map[string]string{"#number": "number"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":prefix": &types.AttributeValueMemberS{Value: prefix},
		},
	})

	latest := ""
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return "", err
		}
		var items []quoteNumberItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return "", err
		}
		for _, it := range items {
			if it.Number > latest {
				latest = it.Number
			}
		}
	}
	return latest, nil
}

type counterItem struct {
	Seq int `dynamodbav:"seq"`
}

// counterAPI is the slice of the DynamoDB client the sequence needs.
type counterAPI interface {
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// QuoteDynamoSequence is an atomic per-day counter. A day's counter that
// does not exist yet is seeded from seed, so numbers already issued for
// that day are never handed out again.
//
// Table requirements:
//   - quote_counters: PK day (string)
type QuoteDynamoSequence struct {
	ddb   counterAPI
	table string
	seed  interfaces.IQuoteSequence
}

var _ interfaces.IQuoteSequence = (*QuoteDynamoSequence)(nil)

func NewQuoteDynamoSequence(ddb *dynamodb.Client, tables Tables, seed interfaces.IQuoteSequence) *QuoteDynamoSequence {
	return &QuoteDynamoSequence{ddb: ddb, table: tables.withDefaults().Counters, seed: seed}
}

func (s *QuoteDynamoSequence) Next(ctx context.Context, dayKey string) (int, error) {
	n, err := s.add(ctx, dayKey, 1)
	if err != nil || n != 1 || s.seed == nil {
		return n, err
	}

	seeded, err := s.seed.Next(ctx, dayKey)
	if err != nil {
		return 0, err
	}
	if seeded <= 1 {
		return n, nil
	}
	return s.add(ctx, dayKey, seeded-1)
}

func (s *QuoteDynamoSequence) add(ctx context.Context, dayKey string, delta int) (int, error) {
	out, err := s.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"day": &types.AttributeValueMemberS{Value: dayKey},
		},
		UpdateExpression:         aws.String("ADD #seq :delta"),
		ExpressionAttributeNames: map[string]string{"#seq": "seq"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":delta": &types.AttributeValueMemberN{Value: strconv.Itoa(delta)},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	var it counterItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return 0, err
	}
	return it.Seq, nil
}
