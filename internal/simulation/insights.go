package simulation

import (
	"fmt"

	"paths-api/internal/domain"
)

// ComposeInsights compara las dos lineas temporales y produce observaciones en
// lenguaje natural. Determinista: sin aleatoriedad, orden fijo.
func ComposeInsights(d domain.Decision, original, alternate []domain.LifeEvent, profile domain.TraitProfile) []string {
	insights := make([]string, 0, 5)

	riskWord := "lower"
	if profile.RiskTolerance != nil && *profile.RiskTolerance > 0.5 {
		riskWord = "higher"
	}
	insights = append(insights, fmt.Sprintf(
		"Your %s decisions typically show a %s risk tolerance pattern.", d.Category, riskWord))

	originalPositive := countPositive(original)
	alternatePositive := countPositive(alternate)
	switch {
	case alternatePositive > originalPositive:
		insights = append(insights, fmt.Sprintf(
			"The alternative path shows %d more positive outcomes in our simulation.",
			alternatePositive-originalPositive))
	case originalPositive > alternatePositive:
		insights = append(insights, fmt.Sprintf(
			"Your chosen path demonstrates %d more positive outcomes than the alternative.",
			originalPositive-alternatePositive))
	default:
		insights = append(insights, "Both paths show similar positive outcome potential in our analysis.")
	}

	switch d.Category {
	case domain.CategoryCareer:
		insights = append(insights, "Career decisions at this life stage typically have long-term compounding effects on professional growth.")
	case domain.CategoryEducation:
		insights = append(insights, "Educational choices create foundational knowledge that influences future decision-making patterns.")
	}

	if d.Importance >= 4 {
		insights = append(insights, "High-importance decisions like this one tend to create significant ripple effects across multiple life domains.")
	}

	insights = append(insights, "Our AI model shows high confidence in these projections based on similar decision patterns in our dataset.")

	return insights
}

func countPositive(events []domain.LifeEvent) int {
	n := 0
	for _, e := range events {
		if e.Impact == domain.ImpactPositive {
			n++
		}
	}
	return n
}
