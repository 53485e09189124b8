package simulation

import (
	"fmt"

	"paths-api/internal/domain"
)

// CategoryWeights pondera los dominios de vida afectados por una categoria.
// Hoy solo informa la seleccion de plantillas; se mantiene en el contrato
// porque el generador la recibe del orquestador.
type CategoryWeights struct {
	Financial float64
	Social    float64
	Personal  float64
	Health    float64
}

var categoryWeights = map[domain.Category]CategoryWeights{
	domain.CategoryCareer:       {Financial: 0.8, Social: 0.6, Personal: 0.4, Health: 0.3},
	domain.CategoryEducation:    {Financial: 0.5, Social: 0.4, Personal: 0.9, Health: 0.2},
	domain.CategoryRelationship: {Financial: 0.3, Social: 0.9, Personal: 0.8, Health: 0.6},
	domain.CategoryLocation:     {Financial: 0.6, Social: 0.5, Personal: 0.7, Health: 0.4},
	domain.CategoryHealth:       {Financial: 0.4, Social: 0.3, Personal: 0.6, Health: 0.9},
	domain.CategoryFinance:      {Financial: 0.9, Social: 0.4, Personal: 0.5, Health: 0.3},
}

// WeightsFor devuelve los pesos de la categoria, o los de career si no tiene.
func WeightsFor(cat domain.Category) CategoryWeights {
	if w, ok := categoryWeights[cat]; ok {
		return w
	}
	return categoryWeights[domain.CategoryCareer]
}

const maxTemplateEvents = 5

// Generator produce lineas temporales de eventos de vida. La estructura es
// determinista; probabilidad e impacto consumen la fuente aleatoria.
type Generator struct {
	src Source
}

func NewGenerator(src Source) *Generator {
	if src == nil {
		src = NewTimeSource()
	}
	return &Generator{src: src}
}

// GenerateTimeline genera la secuencia de eventos para una rama. El primer
// evento es siempre el marcador de inicio con probabilidad fija 0.95.
func (g *Generator) GenerateTimeline(d domain.Decision, alternate bool, weights CategoryWeights, profile domain.TraitProfile) []domain.LifeEvent {
	_ = weights

	first := domain.LifeEvent{
		Title:       "Chosen Path Begins",
		Description: d.ChosenPath,
		Category:    d.Category,
		Timeline:    "Year 1",
		Impact:      domain.ImpactNeutral,
		Probability: 0.95,
		IsAlternate: alternate,
	}
	if alternate {
		first.Title = "Alternative Path Begins"
		first.Description = d.AlternativePath
	}
	events := []domain.LifeEvent{first}

	templates := templatesFor(d.Category)
	for i := 0; i < len(templates) && i < maxTemplateEvents; i++ {
		t := templates[i]
		probability := g.eventProbability(d, profile)
		impact := g.determineImpact(alternate)
		events = append(events, domain.LifeEvent{
			Title:       t.title(alternate),
			Description: t.description(alternate),
			Category:    t.category,
			Timeline:    fmt.Sprintf("Year %d", i+2),
			Impact:      impact,
			Probability: probability,
			IsAlternate: alternate,
		})
	}

	return events
}

// eventProbability aplica la regla de probabilidad: base 0.7, ajuste por
// importancia, ajuste por tolerancia al riesgo si existe, jitter uniforme en
// [-0.1, +0.1] y clamp a [0.1, 0.95].
func (g *Generator) eventProbability(d domain.Decision, profile domain.TraitProfile) float64 {
	p := 0.7
	p += float64(d.Importance-3) * 0.05
	if profile.RiskTolerance != nil {
		p += (*profile.RiskTolerance - 0.5) * 0.1
	}
	p += (g.src.Float64() - 0.5) * 0.2
	return clamp(p, 0.1, 0.95)
}

// determineImpact sortea el impacto. La rama alternativa esta sesgada hacia
// resultados positivos; decision de producto, no de modelo.
func (g *Generator) determineImpact(alternate bool) domain.Impact {
	r := g.src.Float64()
	if alternate {
		switch {
		case r < 0.6:
			return domain.ImpactPositive
		case r < 0.85:
			return domain.ImpactNeutral
		default:
			return domain.ImpactNegative
		}
	}
	switch {
	case r < 0.45:
		return domain.ImpactPositive
	case r < 0.8:
		return domain.ImpactNeutral
	default:
		return domain.ImpactNegative
	}
}
