package domain

import (
	"time"
)

type User struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	DisplayName     string     `json:"display_name,omitempty"`
	AuthProvider    string     `json:"auth_provider,omitempty"`
	AuthSubject     string     `json:"-"`
	PasswordHash    string     `json:"-"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	OtpCodeHash     string     `json:"-"`
	OtpExpiresAt    *time.Time `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Category es el dominio de una decision. Variante etiquetada con un brazo
// explicito Other para categorias no reconocidas.
type Category string

const (
	CategoryCareer       Category = "career"
	CategoryEducation    Category = "education"
	CategoryRelationship Category = "relationship"
	CategoryLocation     Category = "location"
	CategoryHealth       Category = "health"
	CategoryFinance      Category = "finance"
	CategoryOther        Category = "other"
)

// ParseCategory normaliza un string a Category. Valores desconocidos caen en
// CategoryOther; el llamador decide si eso es error o fallback.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryCareer, CategoryEducation, CategoryRelationship,
		CategoryLocation, CategoryHealth, CategoryFinance:
		return Category(s), true
	}
	return CategoryOther, false
}

// Decision es el registro que el usuario somete a simulacion.
type Decision struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Category        Category  `json:"category"`
	ChosenPath      string    `json:"chosen_path"`
	AlternativePath string    `json:"alternative_path"`
	Timeframe       string    `json:"timeframe"`
	Importance      int       `json:"importance"`
	Context         string    `json:"context,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TraitScores son los cuatro rasgos inferidos de una sola decision.
// Siempre presentes y acotados a [0,1].
type TraitScores struct {
	RiskTolerance   float64 `json:"risk_tolerance"`
	PlanningHorizon float64 `json:"planning_horizon"`
	EmotionalWeight float64 `json:"emotional_weight"`
	LogicalWeight   float64 `json:"logical_weight"`
}

// Vector devuelve los rasgos como vector de 4 dimensiones, en el orden
// riesgo, planificacion, emocional, logico.
func (s TraitScores) Vector() []float32 {
	return []float32{
		float32(s.RiskTolerance),
		float32(s.PlanningHorizon),
		float32(s.EmotionalWeight),
		float32(s.LogicalWeight),
	}
}

// TraitProfile es el perfil persistido por usuario. Los escalares son
// punteros: un perfil recien creado no tiene campos y eso cuenta como cero
// datos para el scorer de confianza.
type TraitProfile struct {
	RiskTolerance       *float64             `json:"risk_tolerance,omitempty"`
	PlanningHorizon     *float64             `json:"planning_horizon,omitempty"`
	EmotionalWeight     *float64             `json:"emotional_weight,omitempty"`
	LogicalWeight       *float64             `json:"logical_weight,omitempty"`
	CategoryPreferences map[Category]float64 `json:"category_preferences,omitempty"`
}

// FieldCount devuelve cuantos campos del perfil tienen datos.
func (p TraitProfile) FieldCount() int {
	n := 0
	for _, f := range []*float64{p.RiskTolerance, p.PlanningHorizon, p.EmotionalWeight, p.LogicalWeight} {
		if f != nil {
			n++
		}
	}
	if len(p.CategoryPreferences) > 0 {
		n++
	}
	return n
}

type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// LifeEvent es una entrada de una linea temporal generada. No se muta despues
// de crearse y pertenece exactamente a una Simulation y una rama.
type LifeEvent struct {
	ID           string   `json:"id,omitempty"`
	SimulationID string   `json:"simulation_id,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Timeline     string   `json:"timeline"`
	Impact       Impact   `json:"impact"`
	Probability  float64  `json:"probability"`
	IsAlternate  bool     `json:"is_alternate"`
}

type SimulationStatus string

const (
	SimulationProcessing SimulationStatus = "processing"
	SimulationCompleted  SimulationStatus = "completed"
	SimulationFailed     SimulationStatus = "failed"
)

// Simulation es el resultado agregado de procesar una decision.
type Simulation struct {
	ID                string           `json:"id"`
	DecisionID        string           `json:"decision_id"`
	UserID            string           `json:"user_id"`
	OriginalTimeline  []LifeEvent      `json:"original_timeline"`
	AlternateTimeline []LifeEvent      `json:"alternate_timeline"`
	Insights          []string         `json:"insights"`
	ConfidenceScore   float64          `json:"confidence_score"`
	ProcessingTimeMs  int64            `json:"processing_time_ms"`
	Status            SimulationStatus `json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
}

type SubscriptionTier string

const (
	TierFree       SubscriptionTier = "free"
	TierPremium    SubscriptionTier = "premium"
	TierEnterprise SubscriptionTier = "enterprise"
)

// CanGenerateMedia indica si el tier tiene acceso a generacion de media.
func (t SubscriptionTier) CanGenerateMedia() bool {
	return t == TierPremium || t == TierEnterprise
}

// MonthlySimulationLimit devuelve el cupo mensual del tier; -1 es ilimitado.
func (t SubscriptionTier) MonthlySimulationLimit() int {
	if t == TierPremium || t == TierEnterprise {
		return -1
	}
	return 3
}

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// GeneratedMedia referencia un asset generado para un evento de simulacion.
type GeneratedMedia struct {
	ID           string         `json:"id"`
	SimulationID string         `json:"simulation_id"`
	EventID      string         `json:"event_id,omitempty"`
	UserID       string         `json:"user_id"`
	MediaType    MediaType      `json:"media_type"`
	MediaURL     string         `json:"media_url"`
	Prompt       string         `json:"prompt"`
	Style        string         `json:"style"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// AnalyticsEvent registra actividad de producto para el dashboard.
type AnalyticsEvent struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	SimulationID string         `json:"simulation_id,omitempty"`
	EventType    string         `json:"event_type"`
	EventData    map[string]any `json:"event_data,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// RecentSimulation es la vista resumida para el dashboard.
type RecentSimulation struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Category   Category         `json:"category"`
	Confidence float64          `json:"confidence"`
	Status     SimulationStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
}

// UserStats agrega metricas de uso por usuario.
type UserStats struct {
	TotalSimulations  int                `json:"total_simulations"`
	AvgConfidence     int                `json:"avg_confidence"`
	AvgProcessingSecs float64            `json:"avg_processing_time"`
	TotalInsights     int                `json:"total_insights"`
	Recent            []RecentSimulation `json:"recent_simulations"`
}
