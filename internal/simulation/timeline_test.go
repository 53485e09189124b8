package simulation

import (
	"math"
	"testing"

	"paths-api/internal/domain"
)

func testDecision(cat domain.Category, importance int) domain.Decision {
	return domain.Decision{
		ID:              "dec-1",
		UserID:          "user-1",
		Title:           "A big decision",
		Category:        cat,
		ChosenPath:      "pursue the opportunity in a new company",
		AlternativePath: "continue on the current track",
		Timeframe:       "2 years",
		Importance:      importance,
	}
}

func TestGenerateTimelineFirstEvent(t *testing.T) {
	g := NewGenerator(&FixedSource{Values: []float64{0.5}})
	d := testDecision(domain.CategoryCareer, 3)
	weights := WeightsFor(d.Category)

	original := g.GenerateTimeline(d, false, weights, domain.TraitProfile{})
	if len(original) == 0 {
		t.Fatal("empty timeline")
	}
	first := original[0]
	if first.Title != "Chosen Path Begins" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Description != d.ChosenPath {
		t.Errorf("description = %q, want chosen path", first.Description)
	}
	if first.Timeline != "Year 1" {
		t.Errorf("timeline = %q, want Year 1", first.Timeline)
	}
	if first.Impact != domain.ImpactNeutral {
		t.Errorf("impact = %q, want neutral", first.Impact)
	}
	if first.Probability != 0.95 {
		t.Errorf("probability = %v, want 0.95", first.Probability)
	}
	if first.IsAlternate {
		t.Error("original branch marked alternate")
	}

	alternate := g.GenerateTimeline(d, true, weights, domain.TraitProfile{})
	first = alternate[0]
	if first.Title != "Alternative Path Begins" {
		t.Errorf("alternate title = %q", first.Title)
	}
	if first.Description != d.AlternativePath {
		t.Errorf("alternate description = %q, want alternative path", first.Description)
	}
	if !first.IsAlternate {
		t.Error("alternate branch not marked")
	}
}

func TestGenerateTimelineLengthByCategory(t *testing.T) {
	g := NewGenerator(&FixedSource{Values: []float64{0.5}})

	cases := []struct {
		cat  domain.Category
		want int
	}{
		{domain.CategoryCareer, 6},
		{domain.CategoryEducation, 4},
		// categorias sin plantillas propias caen en las de career
		{domain.CategoryRelationship, 6},
		{domain.CategoryOther, 6},
	}
	for _, tc := range cases {
		d := testDecision(tc.cat, 3)
		events := g.GenerateTimeline(d, false, WeightsFor(tc.cat), domain.TraitProfile{})
		if len(events) != tc.want {
			t.Errorf("category %s: %d events, want %d", tc.cat, len(events), tc.want)
		}
	}
}

func TestGenerateTimelineYearLabels(t *testing.T) {
	g := NewGenerator(&FixedSource{Values: []float64{0.5}})
	d := testDecision(domain.CategoryEducation, 3)

	events := g.GenerateTimeline(d, false, WeightsFor(d.Category), domain.TraitProfile{})
	wantLabels := []string{"Year 1", "Year 2", "Year 3", "Year 4"}
	if len(events) != len(wantLabels) {
		t.Fatalf("%d events, want %d", len(events), len(wantLabels))
	}
	for i, want := range wantLabels {
		if events[i].Timeline != want {
			t.Errorf("event %d timeline = %q, want %q", i, events[i].Timeline, want)
		}
	}
}

func TestEventProbabilityRule(t *testing.T) {
	// jitter neutro: la fuente devuelve 0.5 en todas las extracciones
	g := NewGenerator(&FixedSource{Values: []float64{0.5}})

	cases := []struct {
		importance int
		risk       *float64
		want       float64
	}{
		{3, nil, 0.7},
		{1, nil, 0.6},
		{5, nil, 0.8},
		{3, ptr(1.0), 0.75},
		{3, ptr(0.0), 0.65},
	}
	for _, tc := range cases {
		d := testDecision(domain.CategoryCareer, tc.importance)
		profile := domain.TraitProfile{RiskTolerance: tc.risk}
		got := g.eventProbability(d, profile)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("importance=%d risk=%v: probability = %v, want %v", tc.importance, tc.risk, got, tc.want)
		}
	}
}

func TestEventProbabilityClamp(t *testing.T) {
	// importancia fuera de escala mas jitter maximo supera el techo
	g := NewGenerator(&FixedSource{Values: []float64{1.0}})
	d := testDecision(domain.CategoryCareer, 9)
	profile := domain.TraitProfile{RiskTolerance: ptr(1.0)}

	got := g.eventProbability(d, profile)
	if got != 0.95 {
		t.Errorf("probability = %v, want clamp at 0.95", got)
	}
}

func TestGenerateTimelineProbabilityRange(t *testing.T) {
	g := NewGenerator(NewSeededSource(42))
	d := testDecision(domain.CategoryCareer, 5)

	for i := 0; i < 50; i++ {
		events := g.GenerateTimeline(d, i%2 == 0, WeightsFor(d.Category), domain.TraitProfile{})
		for _, e := range events[1:] {
			if e.Probability < 0.1 || e.Probability > 0.95 {
				t.Fatalf("probability %v out of [0.1, 0.95]", e.Probability)
			}
		}
	}
}

func TestDetermineImpactThresholds(t *testing.T) {
	cases := []struct {
		draw      float64
		alternate bool
		want      domain.Impact
	}{
		{0.3, true, domain.ImpactPositive},
		{0.7, true, domain.ImpactNeutral},
		{0.9, true, domain.ImpactNegative},
		{0.3, false, domain.ImpactPositive},
		{0.5, false, domain.ImpactNeutral},
		{0.9, false, domain.ImpactNegative},
		// bordes: la rama alternativa es mas generosa
		{0.5, true, domain.ImpactPositive},
		{0.5, false, domain.ImpactNeutral},
	}
	for _, tc := range cases {
		g := NewGenerator(&FixedSource{Values: []float64{tc.draw}})
		got := g.determineImpact(tc.alternate)
		if got != tc.want {
			t.Errorf("draw=%v alternate=%v: impact = %q, want %q", tc.draw, tc.alternate, got, tc.want)
		}
	}
}

func TestWeightsForFallback(t *testing.T) {
	career := WeightsFor(domain.CategoryCareer)
	other := WeightsFor(domain.CategoryOther)
	if other != career {
		t.Errorf("unknown category weights = %+v, want career weights %+v", other, career)
	}

	finance := WeightsFor(domain.CategoryFinance)
	if finance.Financial != 0.9 {
		t.Errorf("finance financial weight = %v, want 0.9", finance.Financial)
	}
}

func ptr(v float64) *float64 { return &v }
