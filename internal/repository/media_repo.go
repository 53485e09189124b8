package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"paths-api/internal/domain"
)

// MediaRepository persiste referencias a assets generados.
type MediaRepository interface {
	Create(ctx context.Context, media domain.GeneratedMedia) error
	ListBySimulation(ctx context.Context, simulationID string) ([]domain.GeneratedMedia, error)
}

// PgMediaRepository implementa MediaRepository usando pgxpool.
type PgMediaRepository struct {
	pool *pgxpool.Pool
}

func NewPgMediaRepository(pool *pgxpool.Pool) *PgMediaRepository {
	return &PgMediaRepository{pool: pool}
}

func (r *PgMediaRepository) Create(ctx context.Context, media domain.GeneratedMedia) error {
	const query = `
		INSERT INTO generated_media (id, simulation_id, event_id, user_id, media_type,
			media_url, prompt, style, metadata, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10)
	`
	metadata, err := json.Marshal(media.Metadata)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query,
		media.ID,
		media.SimulationID,
		media.EventID,
		media.UserID,
		string(media.MediaType),
		media.MediaURL,
		media.Prompt,
		media.Style,
		metadata,
		media.CreatedAt,
	)
	return err
}

func (r *PgMediaRepository) ListBySimulation(ctx context.Context, simulationID string) ([]domain.GeneratedMedia, error) {
	const query = `
		SELECT id, simulation_id, COALESCE(event_id, ''), user_id, media_type,
			media_url, prompt, style, metadata, created_at
		FROM generated_media
		WHERE simulation_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, simulationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.GeneratedMedia
	for rows.Next() {
		var m domain.GeneratedMedia
		var mediaType string
		var metadata []byte
		if err := rows.Scan(
			&m.ID,
			&m.SimulationID,
			&m.EventID,
			&m.UserID,
			&mediaType,
			&m.MediaURL,
			&m.Prompt,
			&m.Style,
			&metadata,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		m.MediaType = domain.MediaType(mediaType)
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &m.Metadata); err != nil {
				return nil, err
			}
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
