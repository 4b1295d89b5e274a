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

// DesignRepo provides typed DynamoDB operations for the designs table.
type DesignRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewDesignRepo(client *dynamodb.Client, tableName string) *DesignRepo {
	return &DesignRepo{client: client, tableName: tableName}
}

func (r *DesignRepo) Put(ctx context.Context, d *domain.Design) error {
	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return fmt.Errorf("marshal design: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *DesignRepo) Get(ctx context.Context, designID string) (*domain.Design, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("design_id", designID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("design not found: %w", domain.ErrNotFound)
	}
	var d domain.Design
	if err := attributevalue.UnmarshalMap(out.Item, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DesignRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Design, error) {
	items, err := queryAll(ctx, r.client, r.byProject(projectID))
	if err != nil {
		return nil, err
	}
	var designs []domain.Design
	if err := attributevalue.UnmarshalListOfMaps(items, &designs); err != nil {
		return nil, err
	}
	return designs, nil
}

func (r *DesignRepo) CountByProject(ctx context.Context, projectID string) (int, error) {
	return countAll(ctx, r.client, r.byProject(projectID))
}

func (r *DesignRepo) Update(ctx context.Context, designID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC()
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("design_id", designID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ConditionExpression:       aws.String("attribute_exists(design_id)"),
	})
	if isConditionFailed(err) {
		return fmt.Errorf("design not found: %w", domain.ErrNotFound)
	}
	return err
}

func (r *DesignRepo) Delete(ctx context.Context, designID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("design_id", designID),
	})
	return err
}

func (r *DesignRepo) byProject(projectID string) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(indexByProject),
		KeyConditionExpression: aws.String("project_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": strVal(projectID),
		},
	}
}
