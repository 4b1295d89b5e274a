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

// TaskRepo provides typed DynamoDB operations for the tasks table.
type TaskRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewTaskRepo(client *dynamodb.Client, tableName string) *TaskRepo {
	return &TaskRepo{client: client, tableName: tableName}
}

func (r *TaskRepo) Put(ctx context.Context, t *domain.Task) error {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *TaskRepo) Get(ctx context.Context, taskID string) (*domain.Task, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("task_id", taskID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("task not found: %w", domain.ErrNotFound)
	}
	var t domain.Task
	if err := attributevalue.UnmarshalMap(out.Item, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	return r.query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(indexByProject),
		KeyConditionExpression: aws.String("project_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": strVal(projectID),
		},
	})
}

// ListPendingDueFrom returns pending tasks with due_date >= from, earliest first.
func (r *TaskRepo) ListPendingDueFrom(ctx context.Context, from time.Time) ([]domain.Task, error) {
	return r.listPending(ctx, "#st = :pending AND #dd >= :t", from)
}

// ListPendingDueBefore returns pending tasks with due_date < before, earliest first.
func (r *TaskRepo) ListPendingDueBefore(ctx context.Context, before time.Time) ([]domain.Task, error) {
	return r.listPending(ctx, "#st = :pending AND #dd < :t", before)
}

func (r *TaskRepo) listPending(ctx context.Context, keyCond string, t time.Time) ([]domain.Task, error) {
	return r.query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(indexTaskStatusDue),
		KeyConditionExpression: aws.String(keyCond),
		ExpressionAttributeNames: map[string]string{
			"#st": fieldStatus,
			"#dd": fieldDueDate,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending": strVal(string(domain.TaskPending)),
			":t":       unixVal(t),
		},
	})
}

func (r *TaskRepo) Delete(ctx context.Context, taskID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("task_id", taskID),
	})
	return err
}

func (r *TaskRepo) query(ctx context.Context, input *dynamodb.QueryInput) ([]domain.Task, error) {
	items, err := queryAll(ctx, r.client, input)
	if err != nil {
		return nil, err
	}
	var tasks []domain.Task
	if err := attributevalue.UnmarshalListOfMaps(items, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
