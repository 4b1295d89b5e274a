package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-projects-nosql/internal/domain"
)

// WireframeRepo records wireframe generations per project.
type WireframeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewWireframeRepo(client *dynamodb.Client, tableName string) *WireframeRepo {
	return &WireframeRepo{client: client, tableName: tableName}
}

func (r *WireframeRepo) Put(ctx context.Context, g *domain.WireframeGeneration) error {
	item, err := attributevalue.MarshalMap(g)
	if err != nil {
		return fmt.Errorf("marshal wireframe generation: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *WireframeRepo) CountByProject(ctx context.Context, projectID string) (int, error) {
	return countAll(ctx, r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(indexByProject),
		KeyConditionExpression: aws.String("project_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": strVal(projectID),
		},
	})
}
