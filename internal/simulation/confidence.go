package simulation

import "paths-api/internal/domain"

// Scorer calcula la confianza global de una simulacion.
type Scorer struct {
	src Source
}

func NewScorer(src Source) *Scorer {
	if src == nil {
		src = NewTimeSource()
	}
	return &Scorer{src: src}
}

// categoryConfidence refleja cuan comunes son las decisiones de cada categoria
// en el dataset; categorias desconocidas usan 0.70.
func categoryConfidence(cat domain.Category) float64 {
	switch cat {
	case domain.CategoryCareer:
		return 0.85
	case domain.CategoryEducation:
		return 0.80
	case domain.CategoryRelationship:
		return 0.75
	case domain.CategoryLocation:
		return 0.70
	case domain.CategoryHealth:
		return 0.65
	case domain.CategoryFinance:
		return 0.80
	default:
		return 0.70
	}
}

// ScoreConfidence parte de la base por categoria, suma un bono acotado por la
// cantidad de datos de perfil disponibles, agrega jitter uniforme en
// [-0.05, +0.05] y acota a [0.6, 0.95].
func (s *Scorer) ScoreConfidence(d domain.Decision, profile domain.TraitProfile) float64 {
	confidence := categoryConfidence(d.Category)

	bonus := 0.02 * float64(profile.FieldCount())
	if bonus > 0.1 {
		bonus = 0.1
	}
	confidence += bonus

	confidence += (s.src.Float64() - 0.5) * 0.1

	return clamp(confidence, 0.6, 0.95)
}
