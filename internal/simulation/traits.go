package simulation

import (
	"strings"

	"paths-api/internal/domain"
)

// Palabras clave para inferencia de rasgos. Coincidencia por substring, sin
// distincion de mayusculas.
var (
	riskKeywords      = []string{"risk", "uncertain", "gamble", "chance", "adventure"}
	safetyKeywords    = []string{"safe", "secure", "stable", "certain", "guaranteed"}
	longTermKeywords  = []string{"future", "long-term", "career", "retirement", "years"}
	shortTermKeywords = []string{"immediate", "now", "quick", "short-term", "urgent"}
	emotionalKeywords = []string{"feel", "heart", "passion", "love", "excited", "happy", "sad", "fear"}
	logicalKeywords   = []string{"analyze", "data", "research", "logical", "practical", "efficient", "cost", "benefit"}
)

// InferTraits deriva los cuatro rasgos de decision a partir del texto libre.
// Es una funcion pura: misma decision, mismos rasgos, sin aleatoriedad.
func InferTraits(d domain.Decision) domain.TraitScores {
	pathText := strings.ToLower(d.ChosenPath + " " + d.AlternativePath + " " + d.Context)
	planText := strings.ToLower(d.Timeframe + " " + d.Context)

	return domain.TraitScores{
		RiskTolerance:   keywordScore(pathText, 0.5, riskKeywords, safetyKeywords),
		PlanningHorizon: keywordScore(planText, 0.5, longTermKeywords, shortTermKeywords),
		EmotionalWeight: keywordScore(pathText, 0.3, emotionalKeywords, nil),
		LogicalWeight:   keywordScore(pathText, 0.3, logicalKeywords, nil),
	}
}

func keywordScore(text string, baseline float64, up, down []string) float64 {
	score := baseline
	for _, kw := range up {
		if strings.Contains(text, kw) {
			score += 0.1
		}
	}
	for _, kw := range down {
		if strings.Contains(text, kw) {
			score -= 0.1
		}
	}
	return clamp(score, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
