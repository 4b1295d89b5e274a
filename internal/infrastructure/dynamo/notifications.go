package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-projects-nosql/internal/domain"
)

// NotificationRepo provides typed DynamoDB operations for the notifications table.
type NotificationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewNotificationRepo(client *dynamodb.Client, tableName string) *NotificationRepo {
	return &NotificationRepo{client: client, tableName: tableName}
}

// Put stores n, filling in the dedup key from its task and type.
func (r *NotificationRepo) Put(ctx context.Context, n *domain.Notification) error {
	n.DedupKey = domain.NotificationDedupKey(n.TaskID, n.Type)
	item, err := attributevalue.MarshalMap(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *NotificationRepo) Get(ctx context.Context, notificationID string) (*domain.Notification, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("notification_id", notificationID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("notification not found: %w", domain.ErrNotFound)
	}
	var n domain.Notification
	if err := attributevalue.UnmarshalMap(out.Item, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ExistsSince reports whether a notification of type t was stored for taskID at or after since.
func (r *NotificationRepo) ExistsSince(ctx context.Context, taskID string, t domain.NotificationType, since time.Time) (bool, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(indexNotifDedup),
		KeyConditionExpression: aws.String("#k = :k AND #ca >= :since"),
		ExpressionAttributeNames: map[string]string{
			"#k":  "task_type",
			"#ca": fieldCreatedAt,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":k":     strVal(domain.NotificationDedupKey(taskID, t)),
			":since": unixVal(since),
		},
		Select: types.SelectCount,
		Limit:  aws.Int32(1),
	})
	if err != nil {
		return false, err
	}
	return out.Count > 0, nil
}

// ListUnread returns up to limit unread notifications for userID, newest first.
func (r *NotificationRepo) ListUnread(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	var notifications []domain.Notification
	p := dynamodb.NewQueryPaginator(r.client, r.unreadQuery(userID))
	for p.HasMorePages() && (limit <= 0 || len(notifications) < limit) {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var page []domain.Notification
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		notifications = append(notifications, page...)
	}
	if limit > 0 && len(notifications) > limit {
		notifications = notifications[:limit]
	}
	return notifications, nil
}

func (r *NotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	return countAll(ctx, r.client, r.unreadQuery(userID))
}

// MarkRead sets is_read on a notification owned by userID.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, notificationID string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("notification_id", notificationID),
		UpdateExpression:    aws.String("SET #r = :t"),
		ConditionExpression: aws.String("attribute_exists(notification_id) AND user_id = :uid"),
		ExpressionAttributeNames: map[string]string{
			"#r": fieldIsRead,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t":   &types.AttributeValueMemberBOOL{Value: true},
			":uid": strVal(userID),
		},
	})
	if isConditionFailed(err) {
		return fmt.Errorf("notification not found: %w", domain.ErrNotFound)
	}
	return err
}

// MarkAllRead flags every unread notification of userID and returns how many were updated.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) (int, error) {
	items, err := queryAll(ctx, r.client, r.unreadQuery(userID))
	if err != nil {
		return 0, err
	}
	var unread []domain.Notification
	if err := attributevalue.UnmarshalListOfMaps(items, &unread); err != nil {
		return 0, err
	}
	for _, n := range unread {
		if err := r.MarkRead(ctx, userID, n.NotificationID); err != nil {
			return 0, fmt.Errorf("mark %s read: %w", n.NotificationID, err)
		}
	}
	return len(unread), nil
}

func (r *NotificationRepo) unreadQuery(userID string) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(indexNotifUserCreated),
		KeyConditionExpression: aws.String("user_id = :uid"),
		FilterExpression:       aws.String("#r = :f"),
		ExpressionAttributeNames: map[string]string{
			"#r": fieldIsRead,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": strVal(userID),
			":f":   &types.AttributeValueMemberBOOL{Value: false},
		},
		ScanIndexForward: aws.Bool(false),
	}
}
