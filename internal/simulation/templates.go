package simulation

import "paths-api/internal/domain"

// eventTemplate describe un evento futuro plantillado, con variantes para la
// rama elegida y la alternativa.
type eventTemplate struct {
	chosenTitle string
	altTitle    string
	chosenDesc  string
	altDesc     string
	category    domain.Category
}

func (t eventTemplate) title(alternate bool) string {
	if alternate {
		return t.altTitle
	}
	return t.chosenTitle
}

func (t eventTemplate) description(alternate bool) string {
	if alternate {
		return t.altDesc
	}
	return t.chosenDesc
}

var careerTemplates = []eventTemplate{
	{
		chosenTitle: "Professional Network Growth",
		altTitle:    "New Industry Network Development",
		chosenDesc:  "Strengthened existing professional relationships",
		altDesc:     "Built connections in a different industry sector",
		category:    domain.CategoryCareer,
	},
	{
		chosenTitle: "Skill Enhancement",
		altTitle:    "Alternative Skill Acquisition",
		chosenDesc:  "Advanced current skill set",
		altDesc:     "Developed different technical competencies",
		category:    domain.CategoryEducation,
	},
	{
		chosenTitle: "Leadership Development",
		altTitle:    "Different Leadership Opportunities",
		chosenDesc:  "Advanced in current leadership track",
		altDesc:     "Took on leadership roles in new context",
		category:    domain.CategoryCareer,
	},
	{
		chosenTitle: "Financial Advancement",
		altTitle:    "Alternative Financial Growth",
		chosenDesc:  "Met current financial goals",
		altDesc:     "Achieved different income trajectory",
		category:    domain.CategoryFinance,
	},
	{
		chosenTitle: "Work-Life Integration",
		altTitle:    "Work-Life Balance Shift",
		chosenDesc:  "Maintained current lifestyle approach",
		altDesc:     "Experienced different lifestyle balance",
		category:    domain.CategoryHealth,
	},
}

var educationTemplates = []eventTemplate{
	{
		chosenTitle: "Academic Specialization",
		altTitle:    "Alternative Academic Focus",
		chosenDesc:  "Deepened current academic focus",
		altDesc:     "Pursued different field of study",
		category:    domain.CategoryEducation,
	},
	{
		chosenTitle: "Academic Community",
		altTitle:    "Different Peer Network",
		chosenDesc:  "Built relationships in current field",
		altDesc:     "Connected with peers in alternative field",
		category:    domain.CategoryRelationship,
	},
	{
		chosenTitle: "Career Readiness",
		altTitle:    "Alternative Career Preparation",
		chosenDesc:  "Built foundation for current career",
		altDesc:     "Prepared for different career path",
		category:    domain.CategoryCareer,
	},
}

// templatesFor resuelve la tabla de plantillas por categoria. Solo career y
// education tienen tabla propia; el resto cae explicitamente en career.
func templatesFor(cat domain.Category) []eventTemplate {
	switch cat {
	case domain.CategoryCareer:
		return careerTemplates
	case domain.CategoryEducation:
		return educationTemplates
	case domain.CategoryRelationship, domain.CategoryLocation,
		domain.CategoryHealth, domain.CategoryFinance, domain.CategoryOther:
		return careerTemplates
	default:
		return careerTemplates
	}
}
