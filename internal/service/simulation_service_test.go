package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"paths-api/internal/domain"
	"paths-api/internal/repository"
	"paths-api/internal/simulation"
)

type mockDecisionRepo struct {
	decisions map[string]domain.Decision
	createErr error
}

func newMockDecisionRepo() *mockDecisionRepo {
	return &mockDecisionRepo{decisions: make(map[string]domain.Decision)}
}

func (m *mockDecisionRepo) Create(_ context.Context, d domain.Decision, _ []float32) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.decisions[d.ID] = d
	return nil
}

func (m *mockDecisionRepo) GetByID(_ context.Context, id string) (domain.Decision, error) {
	d, ok := m.decisions[id]
	if !ok {
		return domain.Decision{}, pgx.ErrNoRows
	}
	return d, nil
}

func (m *mockDecisionRepo) ListByUser(_ context.Context, userID string) ([]domain.Decision, error) {
	var out []domain.Decision
	for _, d := range m.decisions {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDecisionRepo) FindSimilar(_ context.Context, userID, excludeID string, _ []float32, limit int) ([]domain.Decision, error) {
	var out []domain.Decision
	for _, d := range m.decisions {
		if d.UserID == userID && d.ID != excludeID && len(out) < limit {
			out = append(out, d)
		}
	}
	return out, nil
}

type mockProfileRepo struct {
	mu       sync.Mutex
	profile  domain.TraitProfile
	tier     domain.SubscriptionTier
	loadErr  error
	mergeErr error
	tierErr  error
	merged   []domain.TraitProfile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{tier: domain.TierFree}
}

func (m *mockProfileRepo) LoadPatterns(_ context.Context, _ string) (domain.TraitProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return domain.TraitProfile{}, m.loadErr
	}
	return m.profile, nil
}

func (m *mockProfileRepo) MergePatterns(_ context.Context, _ string, patterns domain.TraitProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mergeErr != nil {
		return m.mergeErr
	}
	m.merged = append(m.merged, patterns)
	return nil
}

func (m *mockProfileRepo) GetTier(_ context.Context, _ string) (domain.SubscriptionTier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tierErr != nil {
		return "", m.tierErr
	}
	return m.tier, nil
}

func (m *mockProfileRepo) mergedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.merged)
}

type mockSimRepo struct {
	mu        sync.Mutex
	sims      map[string]domain.Simulation
	createErr error
	stats     domain.UserStats
}

func newMockSimRepo() *mockSimRepo {
	return &mockSimRepo{sims: make(map[string]domain.Simulation)}
}

func (m *mockSimRepo) CreateWithEvents(_ context.Context, sim domain.Simulation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.sims[sim.ID] = sim
	return nil
}

func (m *mockSimRepo) GetByID(_ context.Context, id string) (domain.Simulation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sim, ok := m.sims[id]
	if !ok {
		return domain.Simulation{}, pgx.ErrNoRows
	}
	return sim, nil
}

func (m *mockSimRepo) ListByUser(_ context.Context, userID string) ([]domain.Simulation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Simulation
	for _, sim := range m.sims {
		if sim.UserID == userID {
			out = append(out, sim)
		}
	}
	return out, nil
}

func (m *mockSimRepo) StatsByUser(_ context.Context, _ string) (domain.UserStats, error) {
	return m.stats, nil
}

type mockAnalyticsRepo struct {
	mu     sync.Mutex
	events []domain.AnalyticsEvent
	err    error
}

func (m *mockAnalyticsRepo) Record(_ context.Context, event domain.AnalyticsEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func testSimService(decisions *mockDecisionRepo, profiles *mockProfileRepo, sims *mockSimRepo, analytics *mockAnalyticsRepo, quota SimulationQuota) *SimulationService {
	var analyticsRepo repository.AnalyticsRepository
	if analytics != nil {
		analyticsRepo = analytics
	}
	src := &simulation.FixedSource{Values: []float64{0.5}}
	return NewSimulationService(
		zap.NewNop(),
		decisions,
		profiles,
		sims,
		analyticsRepo,
		simulation.NewGenerator(src),
		simulation.NewScorer(src),
		quota,
	)
}

func seedDecision(repo *mockDecisionRepo) domain.Decision {
	d := domain.Decision{
		ID:              "dec-1",
		UserID:          "user-1",
		Title:           "Change careers",
		Category:        domain.CategoryCareer,
		ChosenPath:      "move into a new field with more opportunity",
		AlternativePath: "stay where I am and grow in place",
		Timeframe:       "5 years",
		Importance:      4,
	}
	repo.decisions[d.ID] = d
	return d
}

func TestProcessHappyPath(t *testing.T) {
	decisions := newMockDecisionRepo()
	profiles := newMockProfileRepo()
	sims := newMockSimRepo()
	analytics := &mockAnalyticsRepo{}
	d := seedDecision(decisions)

	svc := testSimService(decisions, profiles, sims, analytics, nil)

	result, err := svc.Process(context.Background(), "user-1", d.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != domain.SimulationCompleted {
		t.Errorf("status = %q, want completed", result.Status)
	}
	if result.SimulationID == "" {
		t.Error("missing simulation id")
	}
	if result.Confidence < 0.6 || result.Confidence > 0.95 {
		t.Errorf("confidence %v out of range", result.Confidence)
	}

	sim, err := sims.GetByID(context.Background(), result.SimulationID)
	if err != nil {
		t.Fatalf("simulation not persisted: %v", err)
	}
	if len(sim.OriginalTimeline) != 6 || len(sim.AlternateTimeline) != 6 {
		t.Errorf("timeline lengths = %d/%d, want 6/6", len(sim.OriginalTimeline), len(sim.AlternateTimeline))
	}
	for _, e := range sim.OriginalTimeline {
		if e.ID == "" {
			t.Fatal("event without id")
		}
		if e.IsAlternate {
			t.Fatal("original timeline has alternate event")
		}
	}
	if len(sim.Insights) != 5 {
		t.Errorf("%d insights, want 5 for career importance 4", len(sim.Insights))
	}

	// el worker aplica la actualizacion de perfil antes de cerrar
	svc.Close()
	if profiles.mergedCount() != 1 {
		t.Fatalf("merged %d pattern updates, want 1", profiles.mergedCount())
	}
	patterns := profiles.merged[0]
	if patterns.RiskTolerance == nil {
		t.Fatal("merged patterns missing risk tolerance")
	}
	if got := patterns.CategoryPreferences[domain.CategoryCareer]; got != 0.8 {
		t.Errorf("category preference = %v, want 0.8", got)
	}

	analytics.mu.Lock()
	defer analytics.mu.Unlock()
	if len(analytics.events) != 1 || analytics.events[0].EventType != "simulation_completed" {
		t.Errorf("analytics events = %+v", analytics.events)
	}
}

func TestProcessDecisionNotFound(t *testing.T) {
	decisions := newMockDecisionRepo()
	svc := testSimService(decisions, newMockProfileRepo(), newMockSimRepo(), nil, nil)
	defer svc.Close()

	_, err := svc.Process(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrDecisionNotFound) {
		t.Errorf("error = %v, want ErrDecisionNotFound", err)
	}
}

func TestProcessWrongOwner(t *testing.T) {
	decisions := newMockDecisionRepo()
	d := seedDecision(decisions)
	svc := testSimService(decisions, newMockProfileRepo(), newMockSimRepo(), nil, nil)
	defer svc.Close()

	_, err := svc.Process(context.Background(), "someone-else", d.ID)
	if !errors.Is(err, ErrDecisionNotFound) {
		t.Errorf("error = %v, want ErrDecisionNotFound", err)
	}
}

func TestProcessProfileLoadFailureDegrades(t *testing.T) {
	decisions := newMockDecisionRepo()
	profiles := newMockProfileRepo()
	profiles.loadErr = errors.New("db down")
	sims := newMockSimRepo()
	d := seedDecision(decisions)

	svc := testSimService(decisions, profiles, sims, nil, nil)
	defer svc.Close()

	result, err := svc.Process(context.Background(), "user-1", d.ID)
	if err != nil {
		t.Fatalf("expected degraded run, got error: %v", err)
	}
	if result.Status != domain.SimulationCompleted {
		t.Errorf("status = %q, want completed", result.Status)
	}
}

func TestProcessPersistFailureAborts(t *testing.T) {
	decisions := newMockDecisionRepo()
	sims := newMockSimRepo()
	sims.createErr = errors.New("insert failed")
	profiles := newMockProfileRepo()
	d := seedDecision(decisions)

	svc := testSimService(decisions, profiles, sims, nil, nil)

	_, err := svc.Process(context.Background(), "user-1", d.ID)
	if err == nil {
		t.Fatal("expected error when persistence fails")
	}

	// sin fila y sin actualizacion de perfil encolada
	svc.Close()
	if profiles.mergedCount() != 0 {
		t.Errorf("merged %d updates after failed persist, want 0", profiles.mergedCount())
	}
}

func TestProcessMergeFailureDoesNotSurface(t *testing.T) {
	decisions := newMockDecisionRepo()
	profiles := newMockProfileRepo()
	profiles.mergeErr = errors.New("merge conflict")
	sims := newMockSimRepo()
	d := seedDecision(decisions)

	svc := testSimService(decisions, profiles, sims, nil, nil)

	_, err := svc.Process(context.Background(), "user-1", d.ID)
	svc.Close()
	if err != nil {
		t.Fatalf("merge failure should not surface: %v", err)
	}
}

func TestProcessQuotaExceeded(t *testing.T) {
	decisions := newMockDecisionRepo()
	profiles := newMockProfileRepo()
	sims := newMockSimRepo()
	d := seedDecision(decisions)

	quota := NewMemorySimulationQuota()
	svc := testSimService(decisions, profiles, sims, nil, quota)
	defer svc.Close()

	// tier free: tres simulaciones al mes
	for i := 0; i < 3; i++ {
		if _, err := svc.Process(context.Background(), "user-1", d.ID); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	_, err := svc.Process(context.Background(), "user-1", d.ID)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("error = %v, want ErrQuotaExceeded", err)
	}
}

func TestProcessPremiumUnlimited(t *testing.T) {
	decisions := newMockDecisionRepo()
	profiles := newMockProfileRepo()
	profiles.tier = domain.TierPremium
	sims := newMockSimRepo()
	d := seedDecision(decisions)

	svc := testSimService(decisions, profiles, sims, nil, NewMemorySimulationQuota())
	defer svc.Close()

	for i := 0; i < 10; i++ {
		if _, err := svc.Process(context.Background(), "user-1", d.ID); err != nil {
			t.Fatalf("premium run %d: %v", i, err)
		}
	}
}

func TestGetSimulationOwnership(t *testing.T) {
	sims := newMockSimRepo()
	sims.sims["sim-1"] = domain.Simulation{ID: "sim-1", UserID: "user-1"}

	svc := testSimService(newMockDecisionRepo(), newMockProfileRepo(), sims, nil, nil)
	defer svc.Close()

	if _, err := svc.GetSimulation(context.Background(), "user-1", "sim-1"); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}
	if _, err := svc.GetSimulation(context.Background(), "user-2", "sim-1"); !errors.Is(err, ErrSimulationNotFound) {
		t.Errorf("foreign lookup error = %v, want ErrSimulationNotFound", err)
	}
	if _, err := svc.GetSimulation(context.Background(), "user-1", "missing"); !errors.Is(err, ErrSimulationNotFound) {
		t.Errorf("missing lookup error = %v, want ErrSimulationNotFound", err)
	}
}
