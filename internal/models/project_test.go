package models

import (
	"testing"
)

func TestFrameworkStepString(t *testing.T) {
	tests := []struct {
		step     FrameworkStep
		expected string
	}{
		{StepConcept, "Concept"},
		{StepMarketValidation, "Market Validation"},
		{StepBusinessModel, "Business Model"},
		{StepActionPlan, "Action Plan"},
		{StepResources, "Resources"},
		{FrameworkStep(0), "Unknown"},
		{FrameworkStep(9), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.step.String(); got != tt.expected {
			t.Errorf("FrameworkStep(%d).String() = %q, want %q", tt.step, got, tt.expected)
		}
	}
}

func TestFrameworkStepIsValid(t *testing.T) {
	for step := StepConcept; step <= StepResources; step++ {
		if !step.IsValid() {
			t.Errorf("Step %d should be valid", step)
		}
	}
	if FrameworkStep(0).IsValid() {
		t.Error("Step 0 should be invalid")
	}
	if FrameworkStep(6).IsValid() {
		t.Error("Step 6 should be invalid")
	}
}

func TestStepFieldsRoundTrip(t *testing.T) {
	p := &Project{}

	for step := StepConcept; step <= StepResources; step++ {
		primary := step.String() + " primary"
		secondary := step.String() + " secondary"
		p.SetStepFields(step, primary, secondary)

		gotPrimary, gotSecondary := p.StepFields(step)
		if gotPrimary != primary || gotSecondary != secondary {
			t.Errorf("Step %v: got (%q, %q), want (%q, %q)", step, gotPrimary, gotSecondary, primary, secondary)
		}
	}

	// Fields must not bleed across steps
	p2 := &Project{}
	p2.SetStepFields(StepBusinessModel, "revenue", "costs")
	if p2.ConceptSummary != "" || p2.ActionPlan != "" {
		t.Error("Setting one step's fields must not touch other steps")
	}
	if p2.ModelRevenue != "revenue" || p2.ModelCosts != "costs" {
		t.Errorf("Business model fields not set: %q, %q", p2.ModelRevenue, p2.ModelCosts)
	}
}

func TestStructureNormalize(t *testing.T) {
	s := &ProjectStructure{}
	s.Normalize()

	if s.Tags == nil || s.ExtractedNotes == nil || s.ExtractedLinks == nil {
		t.Error("Normalize must replace nil slices with empty ones")
	}

	// Existing content survives normalization
	s2 := &ProjectStructure{Tags: []string{"fintech"}}
	s2.Normalize()
	if len(s2.Tags) != 1 || s2.Tags[0] != "fintech" {
		t.Errorf("Normalize must not clobber populated slices, got %v", s2.Tags)
	}
}
