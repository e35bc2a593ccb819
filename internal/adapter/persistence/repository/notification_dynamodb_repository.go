package repository

import (
	"context"

	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type notificationItem struct {
	ID          string `dynamodbav:"id"`
	RecipientID string `dynamodbav:"recipient_id"`
	QuoteID     string `dynamodbav:"quote_id"`
	QuoteNumber string `dynamodbav:"quote_number"`
	Kind        string `dynamodbav:"kind"`
	Title       string `dynamodbav:"title"`
	Message     string `dynamodbav:"message"`
	Read        bool   `dynamodbav:"read"`
	CreatedAt   string `dynamodbav:"created_at"`
}

// NotificationDynamoRepository stores the per-user inbox.
//
// Table requirements:
//   - notifications: PK id (string)
//   - GSI recipient_id-index (PK: recipient_id, SK: created_at)
type NotificationDynamoRepository struct {
	ddb   *dynamodb.Client
	table string
}

var _ interfaces.INotificationRepository = (*NotificationDynamoRepository)(nil)

func NewNotificationDynamoRepository(ddb *dynamodb.Client, tables Tables) *NotificationDynamoRepository {
	return &NotificationDynamoRepository{ddb: ddb, table: tables.withDefaults().Notifications}
}

func (r *NotificationDynamoRepository) Create(ctx context.Context, n entities.Notification) error {
	av, err := attributevalue.MarshalMap(notificationItem{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		QuoteID:     n.QuoteID,
		QuoteNumber: n.QuoteNumber,
		Kind:        string(n.Kind),
		Title:       n.Title,
		Message:     n.Message,
		Read:        n.Read,
		CreatedAt:   formatTime(n.CreatedAt),
	})
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.table),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	return err
}

func (r *NotificationDynamoRepository) recipientQuery(recipientID string, unreadOnly bool) *dynamodb.QueryInput {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(notificationByRecipientIndex),
		KeyConditionExpression: aws.String("#recipient_id = :recipient_id"),
		ExpressionAttributeNames: map[string]string{
			"#recipient_id": "recipient_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":recipient_id": &types.AttributeValueMemberS{Value: recipientID},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if unreadOnly {
		in.FilterExpression = aws.String("#read = :unread")
		in.ExpressionAttributeNames = mergeNames(in.ExpressionAttributeNames, map[string]string{"#read": "read"})
		in.ExpressionAttributeValues[":unread"] = &types.AttributeValueMemberBOOL{Value: false}
	}
	return in
}

func (r *NotificationDynamoRepository) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]entities.Notification, error) {
	out := []entities.Notification{}
	p := dynamodb.NewQueryPaginator(r.ddb, r.recipientQuery(recipientID, unreadOnly))
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []notificationItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, fromNotificationItem(it))
			if limit > 0 && len(out) == limit {
				return out, nil
			}
		}
	}
	return out, nil
}

func (r *NotificationDynamoRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	in := r.recipientQuery(recipientID, true)
	in.Select = types.SelectCount

	var total int64
	p := dynamodb.NewQueryPaginator(r.ddb, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return 0, err
		}
		total += int64(page.Count)
	}
	return total, nil
}

func (r *NotificationDynamoRepository) MarkRead(ctx context.Context, recipientID, id string) (bool, error) {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #recipient_id = :recipient_id"),
		UpdateExpression:    aws.String("SET #read = :read"),
		ExpressionAttributeNames: map[string]string{
			"#id":           "id",
			"#recipient_id": "recipient_id",
			"#read":         "read",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":recipient_id": &types.AttributeValueMemberS{Value: recipientID},
			":read":         &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *NotificationDynamoRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	unread, err := r.ListByRecipient(ctx, recipientID, true, 0)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, item := range unread {
		ok, err := r.MarkRead(ctx, recipientID, item.ID)
		if err != nil {
			return n, err
		}
		if ok {
			n++
		}
	}
	return n, nil
}

func fromNotificationItem(it notificationItem) entities.Notification {
	return entities.Notification{
		ID:          it.ID,
		RecipientID: it.RecipientID,
		QuoteID:     it.QuoteID,
		QuoteNumber: it.QuoteNumber,
		Kind:        entities.NotificationKind(it.Kind),
		Title:       it.Title,
		Message:     it.Message,
		Read:        it.Read,
		CreatedAt:   parseTime(it.CreatedAt),
	}
}
