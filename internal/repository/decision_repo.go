package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"paths-api/internal/domain"
)

// DecisionRepository define el contrato de persistencia para decisiones.
type DecisionRepository interface {
	Create(ctx context.Context, decision domain.Decision, traitVector []float32) error
	GetByID(ctx context.Context, id string) (domain.Decision, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Decision, error)
	FindSimilar(ctx context.Context, userID, excludeID string, traitVector []float32, limit int) ([]domain.Decision, error)
}

// PgDecisionRepository implementa DecisionRepository usando pgxpool. Ademas de
// los campos del formulario guarda el vector de rasgos inferidos para busqueda
// de decisiones similares.
type PgDecisionRepository struct {
	pool *pgxpool.Pool
}

func NewPgDecisionRepository(pool *pgxpool.Pool) *PgDecisionRepository {
	return &PgDecisionRepository{pool: pool}
}

const decisionColumns = `id, user_id, title, description, category, chosen_path,
	alternative_path, timeframe, importance, context, created_at, updated_at`

func (r *PgDecisionRepository) Create(ctx context.Context, d domain.Decision, traitVector []float32) error {
	const query = `
		INSERT INTO decisions (id, user_id, title, description, category, chosen_path,
			alternative_path, timeframe, importance, context, trait_vector, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.pool.Exec(ctx, query,
		d.ID,
		d.UserID,
		d.Title,
		d.Description,
		string(d.Category),
		d.ChosenPath,
		d.AlternativePath,
		d.Timeframe,
		d.Importance,
		d.Context,
		pgvector.NewVector(traitVector),
		d.CreatedAt,
		d.UpdatedAt,
	)
	return err
}

func (r *PgDecisionRepository) GetByID(ctx context.Context, id string) (domain.Decision, error) {
	const query = `SELECT ` + decisionColumns + ` FROM decisions WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	d, err := scanDecision(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Decision{}, err
	}
	return d, err
}

func (r *PgDecisionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Decision, error) {
	const query = `
		SELECT ` + decisionColumns + `
		FROM decisions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDecisions(rows)
}

// FindSimilar devuelve las decisiones del usuario mas cercanas en el espacio
// de rasgos, excluyendo la decision de referencia.
func (r *PgDecisionRepository) FindSimilar(ctx context.Context, userID, excludeID string, traitVector []float32, limit int) ([]domain.Decision, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `
		SELECT ` + decisionColumns + `
		FROM decisions
		WHERE user_id = $1 AND id <> $2
		ORDER BY trait_vector <-> $3
		LIMIT $4
	`
	rows, err := r.pool.Query(ctx, query, userID, excludeID, pgvector.NewVector(traitVector), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDecisions(rows)
}

func collectDecisions(rows pgx.Rows) ([]domain.Decision, error) {
	var decisions []domain.Decision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return decisions, nil
}

func scanDecision(row pgx.Row) (domain.Decision, error) {
	var d domain.Decision
	var category string
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.Title,
		&d.Description,
		&category,
		&d.ChosenPath,
		&d.AlternativePath,
		&d.Timeframe,
		&d.Importance,
		&d.Context,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return domain.Decision{}, err
	}
	d.Category, _ = domain.ParseCategory(category)
	return d, nil
}
