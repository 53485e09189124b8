package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"paths-api/internal/domain"
	"paths-api/internal/repository"
	"paths-api/internal/simulation"
)

var (
	ErrDecisionNotFound   = errors.New("decision not found")
	ErrSimulationNotFound = errors.New("simulation not found")
	ErrQuotaExceeded      = errors.New("simulation quota exceeded")
)

// SimulationResult es el contrato devuelto al caller tras procesar.
type SimulationResult struct {
	SimulationID     string                  `json:"simulation_id"`
	Confidence       float64                 `json:"confidence"`
	ProcessingTimeMs int64                   `json:"processing_time_ms"`
	Status           domain.SimulationStatus `json:"status"`
}

type patternUpdate struct {
	userID   string
	decision domain.Decision
}

// SimulationService orquesta el pipeline completo: validar propiedad, cargar
// perfil, generar ambas ramas, componer insights, puntuar confianza, persistir
// y encolar la actualizacion del perfil.
type SimulationService struct {
	logger    *zap.Logger
	decisions repository.DecisionRepository
	profiles  repository.ProfileRepository
	sims      repository.SimulationRepository
	analytics repository.AnalyticsRepository
	generator *simulation.Generator
	scorer    *simulation.Scorer
	quota     SimulationQuota

	updates chan patternUpdate
	wg      sync.WaitGroup
	once    sync.Once
}

func NewSimulationService(
	logger *zap.Logger,
	decisions repository.DecisionRepository,
	profiles repository.ProfileRepository,
	sims repository.SimulationRepository,
	analytics repository.AnalyticsRepository,
	generator *simulation.Generator,
	scorer *simulation.Scorer,
	quota SimulationQuota,
) *SimulationService {
	s := &SimulationService{
		logger:    logger,
		decisions: decisions,
		profiles:  profiles,
		sims:      sims,
		analytics: analytics,
		generator: generator,
		scorer:    scorer,
		quota:     quota,
		updates:   make(chan patternUpdate, 64),
	}
	s.wg.Add(1)
	go s.patternWorker()
	return s
}

// Close detiene el worker de actualizaciones de perfil y espera a que drene.
func (s *SimulationService) Close() {
	s.once.Do(func() {
		close(s.updates)
	})
	s.wg.Wait()
}

// Process ejecuta una simulacion completa para una decision del usuario.
// Si falla antes de persistir no queda ninguna fila: el estado failed existe
// en el modelo pero nunca se escribe.
func (s *SimulationService) Process(ctx context.Context, userID, decisionID string) (SimulationResult, error) {
	decision, err := s.decisions.GetByID(ctx, decisionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SimulationResult{}, ErrDecisionNotFound
		}
		return SimulationResult{}, fmt.Errorf("get decision: %w", err)
	}
	if decision.UserID != userID {
		return SimulationResult{}, ErrDecisionNotFound
	}

	if s.quota != nil {
		tier, tierErr := s.profiles.GetTier(ctx, userID)
		if tierErr != nil {
			s.logger.Warn("tier lookup failed, assuming free", zap.Error(tierErr), zap.String("user_id", userID))
			tier = domain.TierFree
		}
		if !s.quota.Allow(userID, tier.MonthlySimulationLimit()) {
			return SimulationResult{}, ErrQuotaExceeded
		}
	}

	start := time.Now()

	// La personalizacion es best-effort: un fallo de lectura degrada a perfil
	// vacio en lugar de abortar la simulacion.
	profile, err := s.profiles.LoadPatterns(ctx, userID)
	if err != nil {
		s.logger.Warn("profile load failed, using empty profile", zap.Error(err), zap.String("user_id", userID))
		profile = domain.TraitProfile{}
	}

	weights := simulation.WeightsFor(decision.Category)
	original := s.generator.GenerateTimeline(decision, false, weights, profile)
	alternate := s.generator.GenerateTimeline(decision, true, weights, profile)

	insights := simulation.ComposeInsights(decision, original, alternate, profile)
	confidence := s.scorer.ScoreConfidence(decision, profile)

	now := time.Now().UTC()
	sim := domain.Simulation{
		ID:                uuid.NewString(),
		DecisionID:        decision.ID,
		UserID:            userID,
		OriginalTimeline:  withEventIDs(original),
		AlternateTimeline: withEventIDs(alternate),
		Insights:          insights,
		ConfidenceScore:   confidence,
		ProcessingTimeMs:  time.Since(start).Milliseconds(),
		Status:            domain.SimulationCompleted,
		CreatedAt:         now,
	}

	if err := s.sims.CreateWithEvents(ctx, sim); err != nil {
		return SimulationResult{}, fmt.Errorf("persist simulation: %w", err)
	}

	s.enqueuePatternUpdate(userID, decision)
	s.recordAnalytics(ctx, sim)

	return SimulationResult{
		SimulationID:     sim.ID,
		Confidence:       sim.ConfidenceScore,
		ProcessingTimeMs: sim.ProcessingTimeMs,
		Status:           sim.Status,
	}, nil
}

// GetSimulation devuelve una simulacion del usuario con ambas lineas temporales.
func (s *SimulationService) GetSimulation(ctx context.Context, userID, simulationID string) (domain.Simulation, error) {
	sim, err := s.sims.GetByID(ctx, simulationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Simulation{}, ErrSimulationNotFound
		}
		return domain.Simulation{}, fmt.Errorf("get simulation: %w", err)
	}
	if sim.UserID != userID {
		return domain.Simulation{}, ErrSimulationNotFound
	}
	return sim, nil
}

// ListSimulations devuelve los resumenes de simulaciones del usuario.
func (s *SimulationService) ListSimulations(ctx context.Context, userID string) ([]domain.Simulation, error) {
	return s.sims.ListByUser(ctx, userID)
}

func withEventIDs(events []domain.LifeEvent) []domain.LifeEvent {
	for i := range events {
		events[i].ID = uuid.NewString()
	}
	return events
}

// enqueuePatternUpdate encola la actualizacion post-hoc del perfil. Si la cola
// esta llena se descarta con warning: la simulacion ya es exitosa para el
// caller y el perfil es eventualmente consistente.
func (s *SimulationService) enqueuePatternUpdate(userID string, decision domain.Decision) {
	select {
	case s.updates <- patternUpdate{userID: userID, decision: decision}:
	default:
		s.logger.Warn("pattern update queue full, dropping", zap.String("user_id", userID))
	}
}

func (s *SimulationService) patternWorker() {
	defer s.wg.Done()
	for upd := range s.updates {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.applyPatternUpdate(ctx, upd); err != nil {
			s.logger.Warn("pattern update failed",
				zap.Error(err),
				zap.String("user_id", upd.userID),
				zap.String("decision_id", upd.decision.ID),
			)
		}
		cancel()
	}
}

// applyPatternUpdate re-infiere los rasgos de la decision y los mezcla en el
// perfil guardado. La preferencia de categoria es importance/5.
func (s *SimulationService) applyPatternUpdate(ctx context.Context, upd patternUpdate) error {
	traits := simulation.InferTraits(upd.decision)
	patterns := domain.TraitProfile{
		RiskTolerance:   &traits.RiskTolerance,
		PlanningHorizon: &traits.PlanningHorizon,
		EmotionalWeight: &traits.EmotionalWeight,
		LogicalWeight:   &traits.LogicalWeight,
		CategoryPreferences: map[domain.Category]float64{
			upd.decision.Category: float64(upd.decision.Importance) / 5,
		},
	}
	return s.profiles.MergePatterns(ctx, upd.userID, patterns)
}

func (s *SimulationService) recordAnalytics(ctx context.Context, sim domain.Simulation) {
	if s.analytics == nil {
		return
	}
	event := domain.AnalyticsEvent{
		ID:           uuid.NewString(),
		UserID:       sim.UserID,
		SimulationID: sim.ID,
		EventType:    "simulation_completed",
		EventData: map[string]any{
			"decision_id":        sim.DecisionID,
			"confidence_score":   sim.ConfidenceScore,
			"processing_time_ms": sim.ProcessingTimeMs,
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.analytics.Record(ctx, event); err != nil {
		s.logger.Warn("analytics record failed", zap.Error(err), zap.String("simulation_id", sim.ID))
	}
}
