package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Statements cria a tabela de histórico de insights. Todos são idempotentes.
var Statements = []string{
	`CREATE TABLE IF NOT EXISTS insight_snapshots (
		id         VARCHAR(32) PRIMARY KEY,
		kind       VARCHAR(16) NOT NULL,
		cache_key  VARCHAR(128) NOT NULL DEFAULT '',
		source     VARCHAR(16) NOT NULL,
		payload    JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_insight_snapshots_kind_created_at
		ON insight_snapshots (kind, created_at DESC)`,
}

// Migrate aplica Statements em uma única transação
func (c *Connection) Migrate(ctx context.Context) error {
	return c.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, statement := range Statements {
			if _, err := tx.ExecContext(ctx, statement); err != nil {
				return fmt.Errorf("erro ao executar statement %d/%d: %w", i+1, len(Statements), err)
			}
		}
		return nil
	})
}
