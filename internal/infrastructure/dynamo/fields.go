package dynamo

// DynamoDB attribute names used in update expressions across all repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldUpdatedAt  = "updated_at"
	fieldLastUpdate = "last_update"
	fieldStats      = "stats"
	fieldIsRead     = "is_read"
	fieldStatus     = "status"
	fieldDueDate    = "due_date"
	fieldCreatedAt  = "created_at"
)
