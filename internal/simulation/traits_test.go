package simulation

import (
	"math"
	"testing"

	"paths-api/internal/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestInferTraitsDeterministic(t *testing.T) {
	d := domain.Decision{
		Title:           "Quit my job to join a startup",
		Category:        domain.CategoryCareer,
		ChosenPath:      "take the risk and join a small startup",
		AlternativePath: "keep my safe and stable job with a guaranteed salary",
		Timeframe:       "next five years",
		Importance:      4,
	}

	first := InferTraits(d)
	second := InferTraits(d)
	if first != second {
		t.Fatalf("expected identical traits for same decision, got %+v vs %+v", first, second)
	}
}

func TestInferTraitsKeywordScoring(t *testing.T) {
	d := domain.Decision{
		ChosenPath:      "take the risk and join a small startup",
		AlternativePath: "keep my safe and stable job with a guaranteed salary",
		Timeframe:       "next five years",
		Importance:      4,
	}

	traits := InferTraits(d)

	// risk +0.1, safe/stable/guaranteed -0.3
	if !almostEqual(traits.RiskTolerance, 0.3) {
		t.Errorf("risk tolerance = %v, want 0.3", traits.RiskTolerance)
	}
	// "years" +0.1
	if !almostEqual(traits.PlanningHorizon, 0.6) {
		t.Errorf("planning horizon = %v, want 0.6", traits.PlanningHorizon)
	}
	// sin keywords emocionales ni logicas: quedan en el baseline
	if !almostEqual(traits.EmotionalWeight, 0.3) {
		t.Errorf("emotional weight = %v, want baseline 0.3", traits.EmotionalWeight)
	}
	if !almostEqual(traits.LogicalWeight, 0.3) {
		t.Errorf("logical weight = %v, want baseline 0.3", traits.LogicalWeight)
	}
}

func TestInferTraitsEmptyDecision(t *testing.T) {
	traits := InferTraits(domain.Decision{})

	if !almostEqual(traits.RiskTolerance, 0.5) {
		t.Errorf("risk tolerance = %v, want 0.5", traits.RiskTolerance)
	}
	if !almostEqual(traits.PlanningHorizon, 0.5) {
		t.Errorf("planning horizon = %v, want 0.5", traits.PlanningHorizon)
	}
	if !almostEqual(traits.EmotionalWeight, 0.3) {
		t.Errorf("emotional weight = %v, want 0.3", traits.EmotionalWeight)
	}
	if !almostEqual(traits.LogicalWeight, 0.3) {
		t.Errorf("logical weight = %v, want 0.3", traits.LogicalWeight)
	}
}

func TestInferTraitsClampedToRange(t *testing.T) {
	d := domain.Decision{
		ChosenPath: "I feel it in my heart, a passion and love for this, excited and happy yet sad with fear",
	}

	traits := InferTraits(d)
	if traits.EmotionalWeight != 1.0 {
		t.Errorf("emotional weight = %v, want clamp at 1.0", traits.EmotionalWeight)
	}

	d = domain.Decision{
		ChosenPath: "safe secure stable certain guaranteed",
	}
	traits = InferTraits(d)
	if traits.RiskTolerance > 1e-9 {
		t.Errorf("risk tolerance = %v, want clamp at 0", traits.RiskTolerance)
	}
}

func TestTraitVectorOrder(t *testing.T) {
	scores := domain.TraitScores{
		RiskTolerance:   0.1,
		PlanningHorizon: 0.2,
		EmotionalWeight: 0.3,
		LogicalWeight:   0.4,
	}
	vec := scores.Vector()
	want := []float32{0.1, 0.2, 0.3, 0.4}
	if len(vec) != len(want) {
		t.Fatalf("vector length = %d, want %d", len(vec), len(want))
	}
	for i := range want {
		if vec[i] != want[i] {
			t.Errorf("vector[%d] = %v, want %v", i, vec[i], want[i])
		}
	}
}
