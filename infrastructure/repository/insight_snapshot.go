package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/store-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/store-insights-api/internal/domain"
)

//go:generate mockgen -source=insight_snapshot.go -destination=mocks/insight_snapshot.go -package=mocks

const (
	insightSnapshotsTable = "insight_snapshots"

	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type InsightSnapshotRepository interface {
	Save(ctx context.Context, snapshot *domain.InsightSnapshot) error
	ListRecent(ctx context.Context, kind domain.SnapshotKind, limit int) ([]*domain.InsightSnapshot, error)
}

type insightSnapshotRepository struct {
	conn *postgres.Connection
}

func NewInsightSnapshotRepository(conn *postgres.Connection) InsightSnapshotRepository {
	return &insightSnapshotRepository{
		conn: conn,
	}
}

func buildSaveQuery(snapshot *domain.InsightSnapshot) (string, []interface{}, error) {
	return squirrel.StatementBuilder.
		Insert(insightSnapshotsTable).
		Columns("id", "kind", "cache_key", "source", "payload", "created_at").
		Values(
			snapshot.ID,
			string(snapshot.Kind),
			snapshot.CacheKey,
			string(snapshot.Source),
			[]byte(snapshot.Payload),
			snapshot.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// Limite fora de (0, MaxHistoryLimit] usa DefaultHistoryLimit. kind vazio lista todos os tipos.
func buildListRecentQuery(kind domain.SnapshotKind, limit int) (string, []interface{}, error) {
	if limit <= 0 || limit > MaxHistoryLimit {
		limit = DefaultHistoryLimit
	}

	query := squirrel.
		Select("s.id, s.kind, s.cache_key, s.source, s.payload, s.created_at").
		From(insightSnapshotsTable + " s").
		OrderBy("s.created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if kind != "" {
		query = query.Where(squirrel.Eq{"s.kind": string(kind)})
	}

	return query.ToSql()
}

func (r *insightSnapshotRepository) Save(ctx context.Context, snapshot *domain.InsightSnapshot) error {
	query, args, err := buildSaveQuery(snapshot)
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *insightSnapshotRepository) ListRecent(ctx context.Context, kind domain.SnapshotKind, limit int) ([]*domain.InsightSnapshot, error) {
	query, args, err := buildListRecentQuery(kind, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.InsightSnapshot, 0)
	for rows.Next() {
		var (
			snapshot domain.InsightSnapshot
			kindStr  string
			source   string
			payload  []byte
		)

		if err := rows.Scan(&snapshot.ID, &kindStr, &snapshot.CacheKey, &source, &payload, &snapshot.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
		}

		snapshot.Kind = domain.SnapshotKind(kindStr)
		snapshot.Source = domain.InsightSource(source)
		snapshot.Payload = payload
		snapshots = append(snapshots, &snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}
