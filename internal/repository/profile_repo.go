package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"paths-api/internal/domain"
)

// ProfileRepository es la frontera de persistencia del perfil de rasgos por
// usuario. Un perfil ausente no es error: se trata como perfil vacio.
type ProfileRepository interface {
	LoadPatterns(ctx context.Context, userID string) (domain.TraitProfile, error)
	MergePatterns(ctx context.Context, userID string, patterns domain.TraitProfile) error
	GetTier(ctx context.Context, userID string) (domain.SubscriptionTier, error)
}

// PgProfileRepository guarda el perfil en profiles.decision_patterns (JSONB).
type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

func (r *PgProfileRepository) LoadPatterns(ctx context.Context, userID string) (domain.TraitProfile, error) {
	const query = `
		SELECT COALESCE(decision_patterns, '{}'::jsonb)
		FROM profiles
		WHERE id = $1
	`
	var raw []byte
	err := r.pool.QueryRow(ctx, query, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.TraitProfile{}, nil
	}
	if err != nil {
		return domain.TraitProfile{}, err
	}

	var patterns domain.TraitProfile
	if err := json.Unmarshal(raw, &patterns); err != nil {
		return domain.TraitProfile{}, err
	}
	return patterns, nil
}

// MergePatterns hace upsert ultimo-gana por campo: los escalares nuevos
// reemplazan a los guardados y category_preferences se mezcla por clave.
// Lecturas y escrituras concurrentes para el mismo usuario pueden pisarse;
// carrera aceptada, el perfil es personalizacion best-effort.
func (r *PgProfileRepository) MergePatterns(ctx context.Context, userID string, patterns domain.TraitProfile) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var raw []byte
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(decision_patterns, '{}'::jsonb) FROM profiles WHERE id = $1 FOR UPDATE`,
		userID,
	).Scan(&raw)

	var existing domain.TraitProfile
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// Primer merge: el perfil se crea implicitamente.
	case err != nil:
		return err
	default:
		if err := json.Unmarshal(raw, &existing); err != nil {
			return err
		}
	}

	merged := mergeTraitProfiles(existing, patterns)
	payload, err := json.Marshal(merged)
	if err != nil {
		return err
	}

	const upsert = `
		INSERT INTO profiles (id, decision_patterns, subscription_tier, subscription_status, created_at, updated_at)
		VALUES ($1, $2, 'free', 'active', $3, $3)
		ON CONFLICT (id)
		DO UPDATE SET decision_patterns = EXCLUDED.decision_patterns, updated_at = EXCLUDED.updated_at
	`
	if _, err := tx.Exec(ctx, upsert, userID, payload, time.Now().UTC()); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func mergeTraitProfiles(existing, incoming domain.TraitProfile) domain.TraitProfile {
	merged := existing
	if incoming.RiskTolerance != nil {
		merged.RiskTolerance = incoming.RiskTolerance
	}
	if incoming.PlanningHorizon != nil {
		merged.PlanningHorizon = incoming.PlanningHorizon
	}
	if incoming.EmotionalWeight != nil {
		merged.EmotionalWeight = incoming.EmotionalWeight
	}
	if incoming.LogicalWeight != nil {
		merged.LogicalWeight = incoming.LogicalWeight
	}
	if len(incoming.CategoryPreferences) > 0 {
		if merged.CategoryPreferences == nil {
			merged.CategoryPreferences = make(map[domain.Category]float64, len(incoming.CategoryPreferences))
		} else {
			copied := make(map[domain.Category]float64, len(merged.CategoryPreferences)+len(incoming.CategoryPreferences))
			for k, v := range merged.CategoryPreferences {
				copied[k] = v
			}
			merged.CategoryPreferences = copied
		}
		for k, v := range incoming.CategoryPreferences {
			merged.CategoryPreferences[k] = v
		}
	}
	return merged
}

func (r *PgProfileRepository) GetTier(ctx context.Context, userID string) (domain.SubscriptionTier, error) {
	const query = `
		SELECT subscription_tier FROM profiles WHERE id = $1
	`
	var tier string
	err := r.pool.QueryRow(ctx, query, userID).Scan(&tier)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.TierFree, nil
	}
	if err != nil {
		return domain.TierFree, err
	}
	switch domain.SubscriptionTier(tier) {
	case domain.TierPremium, domain.TierEnterprise:
		return domain.SubscriptionTier(tier), nil
	}
	return domain.TierFree, nil
}
