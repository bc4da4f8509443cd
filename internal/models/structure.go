package models

// ProjectStructure is the JSON contract returned by the structuring engine.
// All keys are always present; fields the model could not extract render as
// empty strings, never omitted keys or nulls.
type ProjectStructure struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`

	Concept       ConceptSection   `json:"concept"`
	Market        MarketSection    `json:"market"`
	Model         ModelSection     `json:"model"`
	Action        ActionSection    `json:"action"`
	ResourcesPlan ResourcesSection `json:"resourcesPlan"`

	ExtractedNotes []ExtractedNote `json:"extractedNotes"`
	ExtractedLinks []ExtractedLink `json:"extractedLinks"`
}

// ConceptSection covers framework step 1
type ConceptSection struct {
	Idea        string `json:"idea"`
	Solution    string `json:"solution"`
	UniqueValue string `json:"uniqueValue"`
}

// MarketSection covers framework step 2
type MarketSection struct {
	Problem        string `json:"problem"`
	TargetAudience string `json:"targetAudience"`
	Competition    string `json:"competition"`
}

// ModelSection covers framework step 3
type ModelSection struct {
	RevenueStreams string `json:"revenueStreams"`
	Pricing        string `json:"pricing"`
	Costs          string `json:"costs"`
}

// ActionSection covers framework step 4
type ActionSection struct {
	NextSteps string `json:"nextSteps"`
	Timeline  string `json:"timeline"`
	Risks     string `json:"risks"`
}

// ResourcesSection covers framework step 5
type ResourcesSection struct {
	Team   string `json:"team"`
	Budget string `json:"budget"`
	Tools  string `json:"tools"`
}

// ExtractedNote is a note candidate pulled from folder content
type ExtractedNote struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ExtractedLink is a link candidate pulled from folder content
type ExtractedLink struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Normalize guarantees the invariant that slice fields are non-nil so the
// structure always serializes with every key present.
func (s *ProjectStructure) Normalize() {
	if s.Tags == nil {
		s.Tags = []string{}
	}
	if s.ExtractedNotes == nil {
		s.ExtractedNotes = []ExtractedNote{}
	}
	if s.ExtractedLinks == nil {
		s.ExtractedLinks = []ExtractedLink{}
	}
}
