package sentinote

import (
	"context"
	"fmt"
)

// Main is the entry point for the sentinote application. It parses args,
// assembles the application and executes the selected command. Callable
// directly from tests without building the binary; the context enables
// graceful shutdown.
//
// Configuration comes from flags (see [Parse]) and these environment
// variables:
//
//	SENTINOTE_TABLE    - note table name (default: sentinote-notes)
//	AWS_REGION         - region for DynamoDB and Comprehend (default: us-east-1)
//	DYNAMODB_ENDPOINT  - endpoint override for local DynamoDB stacks
//	SURREALDB_URL      - SurrealDB WebSocket URL (default: ws://localhost:8000/rpc)
//	SURREALDB_NS       - SurrealDB namespace (default: sentinote)
//	SURREALDB_DB       - SurrealDB database (default: sentinote)
//	SURREALDB_USER     - SurrealDB username (default: root)
//	SURREALDB_PASS     - SurrealDB password (default: root)
func Main(ctx context.Context, args []string) error {
	cmd, config, err := Parse(args)
	if err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}

	app, err := New(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer app.Close()

	switch c := cmd.(type) {
	case *MigrateCommand:
		if err := app.Migrate(ctx, c); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	case *RunCommand:
		if err := app.Run(ctx, c); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	default:
		return fmt.Errorf("unknown command type: %T", cmd)
	}

	return nil
}
