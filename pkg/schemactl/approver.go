package schemactl

import "context"

// Approver asks for confirmation before a composed schema is executed
// against a live database.
type Approver interface {
	// RequestApproval returns true when the operator confirmed applying
	// the script to dbName.
	RequestApproval(ctx context.Context, dbName string) (bool, error)
}
