package models

import (
	"time"
)

// FrameworkStep identifies one of the five fixed business-planning stages
// every project progresses through.
type FrameworkStep int

const (
	StepConcept          FrameworkStep = 1
	StepMarketValidation FrameworkStep = 2
	StepBusinessModel    FrameworkStep = 3
	StepActionPlan       FrameworkStep = 4
	StepResources        FrameworkStep = 5
)

// StepCount is the number of framework steps
const StepCount = 5

// String returns the human-readable step name
func (s FrameworkStep) String() string {
	switch s {
	case StepConcept:
		return "Concept"
	case StepMarketValidation:
		return "Market Validation"
	case StepBusinessModel:
		return "Business Model"
	case StepActionPlan:
		return "Action Plan"
	case StepResources:
		return "Resources"
	default:
		return "Unknown"
	}
}

// IsValid reports whether the step is within the framework range
func (s FrameworkStep) IsValid() bool {
	return s >= StepConcept && s <= StepResources
}

// Project status values
const (
	ProjectStatusActive   = "active"
	ProjectStatusPaused   = "paused"
	ProjectStatusArchived = "archived"
)

// Project source values
const (
	ProjectSourceManual        = "manual"
	ProjectSourceDriveImport   = "drive_import"
	ProjectSourceDriveAnalysis = "drive_analysis"
)

// Project is the long-lived planning entity. Each framework step owns two
// denormalized free-text fields; the first concatenates the two primary
// sub-fields of the corresponding structure section with a blank line.
type Project struct {
	ID      string `json:"id"` // prj_{uuid}
	OwnerID string `json:"owner_id"`

	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`

	// Step 1 - Concept
	ConceptSummary string `json:"concept_summary"` // idea + solution
	ConceptValue   string `json:"concept_value"`   // unique value proposition

	// Step 2 - Market Validation
	MarketProblem     string `json:"market_problem"` // problem + target audience
	MarketCompetition string `json:"market_competition"`

	// Step 3 - Business Model
	ModelRevenue string `json:"model_revenue"` // revenue streams + pricing
	ModelCosts   string `json:"model_costs"`

	// Step 4 - Action Plan
	ActionPlan  string `json:"action_plan"` // next steps + timeline
	ActionRisks string `json:"action_risks"`

	// Step 5 - Resources
	ResourcesTeam  string `json:"resources_team"` // team + budget
	ResourcesTools string `json:"resources_tools"`

	Status      string        `json:"status"`       // active, paused, archived
	Progress    int           `json:"progress"`     // 0-100
	CurrentStep FrameworkStep `json:"current_step"` // 1-5

	Source       string `json:"source"`                  // manual, drive_import, drive_analysis
	SourceFolder string `json:"source_folder,omitempty"` // Drive folder name for imported projects

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StepFields returns the two denormalized text fields for a framework step
func (p *Project) StepFields(step FrameworkStep) (primary, secondary string) {
	switch step {
	case StepConcept:
		return p.ConceptSummary, p.ConceptValue
	case StepMarketValidation:
		return p.MarketProblem, p.MarketCompetition
	case StepBusinessModel:
		return p.ModelRevenue, p.ModelCosts
	case StepActionPlan:
		return p.ActionPlan, p.ActionRisks
	case StepResources:
		return p.ResourcesTeam, p.ResourcesTools
	}
	return "", ""
}

// SetStepFields updates the two denormalized text fields for a framework step
func (p *Project) SetStepFields(step FrameworkStep, primary, secondary string) {
	switch step {
	case StepConcept:
		p.ConceptSummary, p.ConceptValue = primary, secondary
	case StepMarketValidation:
		p.MarketProblem, p.MarketCompetition = primary, secondary
	case StepBusinessModel:
		p.ModelRevenue, p.ModelCosts = primary, secondary
	case StepActionPlan:
		p.ActionPlan, p.ActionRisks = primary, secondary
	case StepResources:
		p.ResourcesTeam, p.ResourcesTools = primary, secondary
	}
}

// ProjectStats represents aggregate statistics about a user's projects
type ProjectStats struct {
	TotalProjects    int            `json:"total_projects"`
	ProjectsByStatus map[string]int `json:"projects_by_status"`
	ProjectsBySource map[string]int `json:"projects_by_source"`
	LastUpdated      time.Time      `json:"last_updated"`
}
