package dynamo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-projects-nosql/internal/config"
)

// Index names shared by bootstrap and the repos.
const (
	indexUserEmail        = "email-index"
	indexUserUsername     = "username-index"
	indexUserGoogleSub    = "google_sub-index"
	indexByUser           = "user_id-index"
	indexByProject        = "project_id-index"
	indexTaskStatusDue    = "status-due_date-index"
	indexNotifUserCreated = "user_id-created_at-index"
	indexNotifDedup       = "task_type-created_at-index"
)

// Bootstrap creates all DynamoDB tables and GSIs if they don't already exist.
// Tables that already exist are skipped.
func Bootstrap(ctx context.Context, client *dynamodb.Client, tables config.DynamoTables) {
	createTable(ctx, client, &dynamodb.CreateTableInput{
		TableName:   aws.String(tables.Users),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			attr("user_id", types.ScalarAttributeTypeS),
			attr("email", types.ScalarAttributeTypeS),
			attr("username", types.ScalarAttributeTypeS),
			attr("google_sub", types.ScalarAttributeTypeS),
		},
		KeySchema: hashKey("user_id"),
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			gsi(indexUserEmail, "email", ""),
			gsi(indexUserUsername, "username", ""),
			gsi(indexUserGoogleSub, "google_sub", ""),
		},
	})

	createTable(ctx, client, &dynamodb.CreateTableInput{
		TableName:   aws.String(tables.Projects),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			attr("project_id", types.ScalarAttributeTypeS),
			attr("user_id", types.ScalarAttributeTypeS),
		},
		KeySchema: hashKey("project_id"),
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			gsi(indexByUser, "user_id", ""),
		},
	})

	// due_date is a unix-seconds number; undated tasks are simply absent from the status index.
	createTable(ctx, client, &dynamodb.CreateTableInput{
		TableName:   aws.String(tables.Tasks),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			attr("task_id", types.ScalarAttributeTypeS),
			attr("project_id", types.ScalarAttributeTypeS),
			attr("status", types.ScalarAttributeTypeS),
			attr("due_date", types.ScalarAttributeTypeN),
		},
		KeySchema: hashKey("task_id"),
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			gsi(indexByProject, "project_id", ""),
			gsi(indexTaskStatusDue, "status", "due_date"),
		},
	})

	createTable(ctx, client, &dynamodb.CreateTableInput{
		TableName:   aws.String(tables.Designs),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			attr("design_id", types.ScalarAttributeTypeS),
			attr("project_id", types.ScalarAttributeTypeS),
		},
		KeySchema: hashKey("design_id"),
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			gsi(indexByProject, "project_id", ""),
		},
	})

	createTable(ctx, client, &dynamodb.CreateTableInput{
		TableName:   aws.String(tables.Notifications),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			attr("notification_id", types.ScalarAttributeTypeS),
			attr("user_id", types.ScalarAttributeTypeS),
			attr("task_type", types.ScalarAttributeTypeS),
			attr("created_at", types.ScalarAttributeTypeN),
		},
		KeySchema: hashKey("notification_id"),
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			gsi(indexNotifUserCreated, "user_id", "created_at"),
			gsi(indexNotifDedup, "task_type", "created_at"),
		},
	})

	createTable(ctx, client, &dynamodb.CreateTableInput{
		TableName:   aws.String(tables.Wireframes),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			attr("generation_id", types.ScalarAttributeTypeS),
			attr("project_id", types.ScalarAttributeTypeS),
		},
		KeySchema: hashKey("generation_id"),
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			gsi(indexByProject, "project_id", ""),
		},
	})
}

func attr(name string, t types.ScalarAttributeType) types.AttributeDefinition {
	return types.AttributeDefinition{AttributeName: aws.String(name), AttributeType: t}
}

func hashKey(name string) []types.KeySchemaElement {
	return []types.KeySchemaElement{{AttributeName: aws.String(name), KeyType: types.KeyTypeHash}}
}

// gsi builds a GSI descriptor. If sortKey is empty, only a hash key is added.
func gsi(indexName, hashAttr, sortKey string) types.GlobalSecondaryIndex {
	ks := hashKey(hashAttr)
	if sortKey != "" {
		ks = append(ks, types.KeySchemaElement{
			AttributeName: aws.String(sortKey), KeyType: types.KeyTypeRange,
		})
	}
	return types.GlobalSecondaryIndex{
		IndexName:  aws.String(indexName),
		KeySchema:  ks,
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}
}

func createTable(ctx context.Context, client *dynamodb.Client, input *dynamodb.CreateTableInput) {
	_, err := client.CreateTable(ctx, input)
	if err != nil {
		// ResourceInUseException: the table already exists.
		var riue *types.ResourceInUseException
		if !errors.As(err, &riue) {
			slog.Warn("could not create table", "table", *input.TableName, "err", err)
		}
		return
	}
	slog.Info("created table", "table", *input.TableName)
}
