package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"paths-api/internal/domain"
	"paths-api/internal/repository"
	"paths-api/internal/simulation"
)

var ErrInvalidCategory = errors.New("invalid decision category")

// DecisionInput es el formulario de creacion de decisiones, ya validado en
// longitudes por el binding del handler.
type DecisionInput struct {
	Title           string
	Description     string
	Category        string
	ChosenPath      string
	AlternativePath string
	Timeframe       string
	Importance      int
	Context         string
}

// DecisionService maneja el ciclo de vida de decisiones. Al crear una
// decision infiere sus rasgos y guarda el vector para busqueda de similares.
type DecisionService struct {
	decisions repository.DecisionRepository
}

func NewDecisionService(decisions repository.DecisionRepository) *DecisionService {
	return &DecisionService{decisions: decisions}
}

func (s *DecisionService) Create(ctx context.Context, userID string, input DecisionInput) (domain.Decision, error) {
	category, ok := domain.ParseCategory(strings.ToLower(strings.TrimSpace(input.Category)))
	if !ok {
		return domain.Decision{}, ErrInvalidCategory
	}

	importance := input.Importance
	if importance < 1 {
		importance = 1
	}
	if importance > 5 {
		importance = 5
	}

	now := time.Now().UTC()
	decision := domain.Decision{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           strings.TrimSpace(input.Title),
		Description:     strings.TrimSpace(input.Description),
		Category:        category,
		ChosenPath:      input.ChosenPath,
		AlternativePath: input.AlternativePath,
		Timeframe:       input.Timeframe,
		Importance:      importance,
		Context:         input.Context,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	traits := simulation.InferTraits(decision)
	if err := s.decisions.Create(ctx, decision, traits.Vector()); err != nil {
		return domain.Decision{}, fmt.Errorf("persist decision: %w", err)
	}
	return decision, nil
}

func (s *DecisionService) Get(ctx context.Context, userID, decisionID string) (domain.Decision, error) {
	decision, err := s.decisions.GetByID(ctx, decisionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Decision{}, ErrDecisionNotFound
		}
		return domain.Decision{}, err
	}
	if decision.UserID != userID {
		return domain.Decision{}, ErrDecisionNotFound
	}
	return decision, nil
}

func (s *DecisionService) List(ctx context.Context, userID string) ([]domain.Decision, error) {
	return s.decisions.ListByUser(ctx, userID)
}

// FindSimilar devuelve las decisiones del usuario mas cercanas en el espacio
// de rasgos inferidos.
func (s *DecisionService) FindSimilar(ctx context.Context, userID, decisionID string, limit int) ([]domain.Decision, error) {
	decision, err := s.Get(ctx, userID, decisionID)
	if err != nil {
		return nil, err
	}
	traits := simulation.InferTraits(decision)
	return s.decisions.FindSimilar(ctx, userID, decision.ID, traits.Vector(), limit)
}
