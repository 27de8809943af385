// Package contract defines the structured-report shapes the generation
// endpoint must return and validates decoded payloads into exactly one of
// them. A Report is a closed tagged union: the kind tag plus exactly one
// populated variant, so downstream code dispatches without re-inspecting
// shape.
package contract

import "github.com/tenderlens/tenderlens/constants"

// Finding is one line-item comparison between a requirement and a response.
type Finding struct {
	Requirement     string                   `json:"requirement"`
	ResponseExcerpt string                   `json:"response_excerpt,omitempty"`
	Compliance      constants.ComplianceFlag `json:"compliance"`
	ComplianceScore float64                  `json:"compliance_score"`
	Comment         string                   `json:"comment,omitempty"`
}

// ComplianceReport is the full-audit result shape.
type ComplianceReport struct {
	ProjectTitle     string    `json:"project_title"`
	ScopeSummary     string    `json:"scope_summary"`
	ExecutiveSummary string    `json:"executive_summary"`
	Findings         []Finding `json:"findings"`
}

// ProjectEssence is the distilled identity of a tender.
type ProjectEssence struct {
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	OneLineScope string   `json:"one_line_scope"`
	Deliverables []string `json:"deliverables"`
	Constraints  []string `json:"constraints"`
	Risks        []string `json:"risks"`
	Timeline     []string `json:"timeline"`
}

// MatrixEntry is one extracted requirement with its classification.
type MatrixEntry struct {
	Requirement string                        `json:"requirement"`
	Category    constants.RequirementCategory `json:"category"`
	Strictness  constants.StrictnessLevel     `json:"strictness"`
	Details     string                        `json:"details,omitempty"`
}

// ExtractionReport is the extraction-only result shape.
type ExtractionReport struct {
	ProjectEssence   ProjectEssence `json:"project_essence"`
	ComplianceMatrix []MatrixEntry  `json:"compliance_matrix"`
}

// Report is the validated structured result of one pipeline run. Exactly one
// variant matching Kind is non-nil.
type Report struct {
	Kind       constants.ReportKind `json:"kind"`
	Compliance *ComplianceReport    `json:"compliance,omitempty"`
	Extraction *ExtractionReport    `json:"extraction,omitempty"`
}
