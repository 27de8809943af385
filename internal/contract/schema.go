package contract

import "github.com/tenderlens/tenderlens/constants"

// BuildComplianceSchema returns the compliance contract as a JSON-Schema
// (draft 2020-12 subset) generic map. The same value is passed to the
// generation endpoint as its responseSchema and used locally to validate.
func BuildComplianceSchema() map[string]any {
	finding := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"requirement":      map[string]any{"type": "string", "minLength": 1},
			"response_excerpt": map[string]any{"type": "string"},
			"compliance": map[string]any{
				"type": "string",
				"enum": constants.ComplianceFlags(),
			},
			"compliance_score": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"comment":          map[string]any{"type": "string"},
		},
		"required": []string{"requirement", "compliance", "compliance_score"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"project_title":     map[string]any{"type": "string", "minLength": 1},
			"scope_summary":     map[string]any{"type": "string"},
			"executive_summary": map[string]any{"type": "string"},
			"findings":          map[string]any{"type": "array", "items": finding},
		},
		"required": []string{"project_title", "scope_summary", "executive_summary", "findings"},
	}
}

// BuildExtractionSchema returns the extraction contract as a generic map.
func BuildExtractionSchema() map[string]any {
	stringList := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
	essence := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"title":          map[string]any{"type": "string", "minLength": 1},
			"location":       map[string]any{"type": "string"},
			"one_line_scope": map[string]any{"type": "string"},
			"deliverables":   stringList,
			"constraints":    stringList,
			"risks":          stringList,
			"timeline":       stringList,
		},
		"required": []string{"title", "location", "one_line_scope", "deliverables", "constraints", "risks", "timeline"},
	}
	entry := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"requirement": map[string]any{"type": "string", "minLength": 1},
			"category": map[string]any{
				"type": "string",
				"enum": constants.RequirementCategories(),
			},
			"strictness": map[string]any{
				"type": "string",
				"enum": constants.StrictnessLevels(),
			},
			"details": map[string]any{"type": "string"},
		},
		"required": []string{"requirement", "category", "strictness"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"project_essence":   essence,
			"compliance_matrix": map[string]any{"type": "array", "items": entry},
		},
		"required": []string{"project_essence", "compliance_matrix"},
	}
}
