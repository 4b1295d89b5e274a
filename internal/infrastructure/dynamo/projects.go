package dynamo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-projects-nosql/internal/domain"
)

// Project stat counters, addressed as stats.<name>.
const (
	StatWireframes = "wireframes"
	StatDesigns    = "designs"
	StatDeadlines  = "deadlines"
)

// ProjectRepo provides typed DynamoDB operations for the projects table.
type ProjectRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewProjectRepo(client *dynamodb.Client, tableName string) *ProjectRepo {
	return &ProjectRepo{client: client, tableName: tableName}
}

func (r *ProjectRepo) Put(ctx context.Context, p *domain.Project) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ProjectRepo) Get(ctx context.Context, projectID string) (*domain.Project, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("project_id", projectID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("project not found: %w", domain.ErrNotFound)
	}
	var p domain.Project
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepo) ListByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	items, err := queryAll(ctx, r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(indexByUser),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": strVal(userID),
		},
	})
	if err != nil {
		return nil, err
	}
	var projects []domain.Project
	if err := attributevalue.UnmarshalListOfMaps(items, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Update applies a partial update and bumps updated_at and last_update.
func (r *ProjectRepo) Update(ctx context.Context, projectID string, updates map[string]interface{}) error {
	now := time.Now().UTC()
	updates[fieldUpdatedAt] = now
	updates[fieldLastUpdate] = now
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("project_id", projectID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ConditionExpression:       aws.String("attribute_exists(project_id)"),
	})
	if isConditionFailed(err) {
		return fmt.Errorf("project not found: %w", domain.ErrNotFound)
	}
	return err
}

// Touch bumps last_update without changing anything else.
func (r *ProjectRepo) Touch(ctx context.Context, projectID string) error {
	return r.Update(ctx, projectID, map[string]interface{}{})
}

// AdjustStat atomically adds delta to stats.<stat>. Decrements never take the counter below zero.
func (r *ProjectRepo) AdjustStat(ctx context.Context, projectID, stat string, delta int) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	input := &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              strKey("project_id", projectID),
		UpdateExpression: aws.String("ADD #s.#c :d SET #lu = :now, #ua = :now"),
		ExpressionAttributeNames: map[string]string{
			"#s":  fieldStats,
			"#c":  stat,
			"#lu": fieldLastUpdate,
			"#ua": fieldUpdatedAt,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":d":   &types.AttributeValueMemberN{Value: strconv.Itoa(delta)},
			":now": strVal(now),
		},
		ConditionExpression: aws.String("attribute_exists(project_id)"),
	}
	if delta < 0 {
		input.ConditionExpression = aws.String("attribute_exists(project_id) AND #s.#c >= :min")
		input.ExpressionAttributeValues[":min"] = &types.AttributeValueMemberN{Value: strconv.Itoa(-delta)}
	}
	_, err := r.client.UpdateItem(ctx, input)
	if isConditionFailed(err) {
		if delta < 0 {
			// Already at zero (or project gone); nothing to decrement.
			return nil
		}
		return fmt.Errorf("project not found: %w", domain.ErrNotFound)
	}
	return err
}

// SetStats overwrites the whole stats block, used when counters are recomputed.
func (r *ProjectRepo) SetStats(ctx context.Context, projectID string, stats domain.ProjectStats) error {
	return r.Update(ctx, projectID, map[string]interface{}{fieldStats: stats})
}

func (r *ProjectRepo) Delete(ctx context.Context, projectID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("project_id", projectID),
	})
	return err
}
