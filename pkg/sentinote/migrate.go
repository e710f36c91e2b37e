package sentinote

import (
	"context"
	"fmt"

	"github.com/sentinote/sentinote/pkg/storage/dynamodb"
)

// Migrate provisions whatever schema the active backend needs. DynamoDB is
// the only backend with anything to create; SurrealDB is schemaless and the
// in-memory backend has no persistence at all.
func (a *App) Migrate(ctx context.Context, cmd *MigrateCommand) error {
	switch table := a.table.(type) {
	case *dynamodb.Table:
		a.log.Info().Str("table", a.config.TableName).Msg("ensuring DynamoDB table")
		if err := table.EnsureTable(ctx); err != nil {
			return fmt.Errorf("ensure table %s: %w", a.config.TableName, err)
		}
		a.log.Info().Msg("table ready")
		return nil
	default:
		a.log.Info().Str("backend", a.config.Backend).Msg("backend needs no migration")
		return nil
	}
}
