package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"paths-api/internal/domain"
)

// AnalyticsRepository registra eventos de producto. Escritura best-effort:
// el llamador decide si un fallo aqui es fatal (no deberia serlo).
type AnalyticsRepository interface {
	Record(ctx context.Context, event domain.AnalyticsEvent) error
}

// PgAnalyticsRepository implementa AnalyticsRepository usando pgxpool.
type PgAnalyticsRepository struct {
	pool *pgxpool.Pool
}

func NewPgAnalyticsRepository(pool *pgxpool.Pool) *PgAnalyticsRepository {
	return &PgAnalyticsRepository{pool: pool}
}

func (r *PgAnalyticsRepository) Record(ctx context.Context, event domain.AnalyticsEvent) error {
	const query = `
		INSERT INTO analytics (id, user_id, simulation_id, event_type, event_data, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
	`
	data, err := json.Marshal(event.EventData)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query,
		event.ID,
		event.UserID,
		event.SimulationID,
		event.EventType,
		data,
		event.CreatedAt,
	)
	return err
}
