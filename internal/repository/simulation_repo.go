package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"paths-api/internal/domain"
)

// SimulationRepository persiste simulaciones junto con sus eventos de vida.
// Las dos escrituras son atomicas desde el punto de vista del llamador.
type SimulationRepository interface {
	CreateWithEvents(ctx context.Context, sim domain.Simulation) error
	GetByID(ctx context.Context, id string) (domain.Simulation, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Simulation, error)
	StatsByUser(ctx context.Context, userID string) (domain.UserStats, error)
}

// PgSimulationRepository implementa SimulationRepository usando pgxpool.
type PgSimulationRepository struct {
	pool *pgxpool.Pool
}

func NewPgSimulationRepository(pool *pgxpool.Pool) *PgSimulationRepository {
	return &PgSimulationRepository{pool: pool}
}

func (r *PgSimulationRepository) CreateWithEvents(ctx context.Context, sim domain.Simulation) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertSim = `
		INSERT INTO simulations (id, decision_id, user_id, insights, confidence_score,
			processing_time, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := tx.Exec(ctx, insertSim,
		sim.ID,
		sim.DecisionID,
		sim.UserID,
		sim.Insights,
		sim.ConfidenceScore,
		sim.ProcessingTimeMs,
		string(sim.Status),
		sim.CreatedAt,
	); err != nil {
		return err
	}

	const insertEvent = `
		INSERT INTO life_events (id, simulation_id, title, description, category,
			timeline, impact, probability, is_alternate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, branch := range [][]domain.LifeEvent{sim.OriginalTimeline, sim.AlternateTimeline} {
		for _, e := range branch {
			if _, err := tx.Exec(ctx, insertEvent,
				e.ID,
				sim.ID,
				e.Title,
				e.Description,
				string(e.Category),
				e.Timeline,
				string(e.Impact),
				e.Probability,
				e.IsAlternate,
				sim.CreatedAt,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func (r *PgSimulationRepository) GetByID(ctx context.Context, id string) (domain.Simulation, error) {
	const query = `
		SELECT id, decision_id, user_id, insights, confidence_score, processing_time, status, created_at
		FROM simulations
		WHERE id = $1
	`
	var sim domain.Simulation
	var status string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&sim.ID,
		&sim.DecisionID,
		&sim.UserID,
		&sim.Insights,
		&sim.ConfidenceScore,
		&sim.ProcessingTimeMs,
		&status,
		&sim.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Simulation{}, err
	}
	if err != nil {
		return domain.Simulation{}, err
	}
	sim.Status = domain.SimulationStatus(status)

	const eventsQuery = `
		SELECT id, simulation_id, title, description, category, timeline, impact, probability, is_alternate
		FROM life_events
		WHERE simulation_id = $1
		ORDER BY is_alternate, timeline, id
	`
	rows, err := r.pool.Query(ctx, eventsQuery, id)
	if err != nil {
		return domain.Simulation{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.LifeEvent
		var category, impact string
		if err := rows.Scan(
			&e.ID,
			&e.SimulationID,
			&e.Title,
			&e.Description,
			&category,
			&e.Timeline,
			&impact,
			&e.Probability,
			&e.IsAlternate,
		); err != nil {
			return domain.Simulation{}, err
		}
		e.Category, _ = domain.ParseCategory(category)
		e.Impact = domain.Impact(impact)
		if e.IsAlternate {
			sim.AlternateTimeline = append(sim.AlternateTimeline, e)
		} else {
			sim.OriginalTimeline = append(sim.OriginalTimeline, e)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Simulation{}, err
	}

	return sim, nil
}

func (r *PgSimulationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Simulation, error) {
	const query = `
		SELECT id, decision_id, user_id, insights, confidence_score, processing_time, status, created_at
		FROM simulations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sims []domain.Simulation
	for rows.Next() {
		var sim domain.Simulation
		var status string
		if err := rows.Scan(
			&sim.ID,
			&sim.DecisionID,
			&sim.UserID,
			&sim.Insights,
			&sim.ConfidenceScore,
			&sim.ProcessingTimeMs,
			&status,
			&sim.CreatedAt,
		); err != nil {
			return nil, err
		}
		sim.Status = domain.SimulationStatus(status)
		sims = append(sims, sim)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sims, nil
}

// StatsByUser agrega metricas para el dashboard en una sola pasada.
func (r *PgSimulationRepository) StatsByUser(ctx context.Context, userID string) (domain.UserStats, error) {
	const aggQuery = `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COALESCE(AVG(confidence_score) FILTER (WHERE status = 'completed'), 0),
			COALESCE(AVG(processing_time) FILTER (WHERE status = 'completed'), 0)
		FROM simulations
		WHERE user_id = $1
	`
	var stats domain.UserStats
	var completed int
	var avgConfidence, avgProcessingMs float64
	if err := r.pool.QueryRow(ctx, aggQuery, userID).Scan(
		&stats.TotalSimulations,
		&completed,
		&avgConfidence,
		&avgProcessingMs,
	); err != nil {
		return domain.UserStats{}, err
	}

	stats.AvgConfidence = int(avgConfidence*100 + 0.5)
	stats.AvgProcessingSecs = float64(int(avgProcessingMs/1000*10+0.5)) / 10
	stats.TotalInsights = completed * 5

	const recentQuery = `
		SELECT s.id, COALESCE(d.title, 'Untitled Decision'), COALESCE(d.category, 'other'),
			s.confidence_score, s.status, s.created_at
		FROM simulations s
		LEFT JOIN decisions d ON d.id = s.decision_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
		LIMIT 5
	`
	rows, err := r.pool.Query(ctx, recentQuery, userID)
	if err != nil {
		return domain.UserStats{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var rec domain.RecentSimulation
		var category, status string
		if err := rows.Scan(&rec.ID, &rec.Title, &category, &rec.Confidence, &status, &rec.CreatedAt); err != nil {
			return domain.UserStats{}, err
		}
		rec.Category, _ = domain.ParseCategory(category)
		rec.Status = domain.SimulationStatus(status)
		stats.Recent = append(stats.Recent, rec)
	}
	if err := rows.Err(); err != nil {
		return domain.UserStats{}, err
	}

	return stats, nil
}
