package contract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderlens/tenderlens/constants"
	"github.com/tenderlens/tenderlens/internal/common"
)

func mustPayload(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func validCompliancePayload(t *testing.T) map[string]any {
	return mustPayload(t, `{
		"project_title": "Harbor Expansion",
		"scope_summary": "Dredging and quay construction.",
		"executive_summary": "Mostly compliant with two gaps.",
		"findings": [
			{"requirement": "Shall use REST API.", "compliance": "NON-COMPLIANT", "compliance_score": 0},
			{"requirement": "Shall deliver monthly reports.", "compliance": "COMPLIANT", "compliance_score": 1}
		]
	}`)
}

func validExtractionPayload(t *testing.T) map[string]any {
	return mustPayload(t, `{
		"project_essence": {
			"title": "Harbor Expansion",
			"location": "Rotterdam",
			"one_line_scope": "Dredge and extend quay 4.",
			"deliverables": ["Quay wall"],
			"constraints": ["Night work prohibited"],
			"risks": ["Soil contamination"],
			"timeline": ["Q3 2026 completion"]
		},
		"compliance_matrix": [
			{"requirement": "ISO 9001 certification", "category": "ADMIN", "strictness": "MANDATORY"}
		]
	}`)
}

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(nil)
	require.NoError(t, err)
	return r
}

func TestValidateCompliancePayload(t *testing.T) {
	r := newRegistry(t)

	rep, err := r.Validate(constants.ReportCompliance, validCompliancePayload(t))
	require.NoError(t, err)
	assert.Equal(t, constants.ReportCompliance, rep.Kind)
	require.NotNil(t, rep.Compliance)
	assert.Nil(t, rep.Extraction)
	assert.Equal(t, "Harbor Expansion", rep.Compliance.ProjectTitle)
	require.Len(t, rep.Compliance.Findings, 2)
	assert.Equal(t, constants.NonCompliant, rep.Compliance.Findings[0].Compliance)
	assert.Equal(t, 1.0, rep.Compliance.Findings[1].ComplianceScore)
}

func TestValidateExtractionPayload(t *testing.T) {
	r := newRegistry(t)

	rep, err := r.Validate(constants.ReportExtraction, validExtractionPayload(t))
	require.NoError(t, err)
	assert.Equal(t, constants.ReportExtraction, rep.Kind)
	require.NotNil(t, rep.Extraction)
	assert.Nil(t, rep.Compliance)
	assert.Equal(t, "Rotterdam", rep.Extraction.ProjectEssence.Location)
	require.Len(t, rep.Extraction.ComplianceMatrix, 1)
	assert.Equal(t, constants.StrictMandatory, rep.Extraction.ComplianceMatrix[0].Strictness)
}

func TestValidateRejectsMissingRequiredField(t *testing.T) {
	r := newRegistry(t)

	payload := validCompliancePayload(t)
	delete(payload, "executive_summary")

	_, err := r.Validate(constants.ReportCompliance, payload)
	require.Error(t, err)
	assert.Equal(t, common.KindValidationError, common.KindOf(err))
}

func TestValidateRejectsMissingFindingScore(t *testing.T) {
	r := newRegistry(t)

	payload := validCompliancePayload(t)
	finding := payload["findings"].([]any)[0].(map[string]any)
	delete(finding, "compliance_score")

	_, err := r.Validate(constants.ReportCompliance, payload)
	require.Error(t, err)
	assert.Equal(t, common.KindValidationError, common.KindOf(err))
}

func TestValidateRejectsOutOfDomainEnum(t *testing.T) {
	r := newRegistry(t)

	payload := validCompliancePayload(t)
	finding := payload["findings"].([]any)[0].(map[string]any)
	finding["compliance"] = "MAYBE"

	_, err := r.Validate(constants.ReportCompliance, payload)
	require.Error(t, err)
	assert.Equal(t, common.KindValidationError, common.KindOf(err))

	extraction := validExtractionPayload(t)
	entry := extraction["compliance_matrix"].([]any)[0].(map[string]any)
	entry["strictness"] = "NICE_TO_HAVE"

	_, err = r.Validate(constants.ReportExtraction, extraction)
	require.Error(t, err)
	assert.Equal(t, common.KindValidationError, common.KindOf(err))
}

func TestValidateDropsUnknownFields(t *testing.T) {
	r := newRegistry(t)

	payload := validCompliancePayload(t)
	payload["model_notes"] = "ignore me"
	finding := payload["findings"].([]any)[0].(map[string]any)
	finding["confidence"] = 0.9

	rep, err := r.Validate(constants.ReportCompliance, payload)
	require.NoError(t, err)
	require.NotNil(t, rep.Compliance)
	assert.Len(t, rep.Compliance.Findings, 2)
}

func TestValidateUnknownKind(t *testing.T) {
	r := newRegistry(t)

	_, err := r.Validate(constants.ReportKind("SUMMARY"), validCompliancePayload(t))
	require.Error(t, err)
	assert.Equal(t, common.KindValidationError, common.KindOf(err))
}

func TestSchemaForEmbedsEnumDomains(t *testing.T) {
	r := newRegistry(t)

	schema := r.SchemaFor(constants.ReportExtraction)
	require.NotNil(t, schema)
	b, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Contains(t, string(b), "HIDDEN_COST")
	assert.Contains(t, string(b), "LOGISTICS")
}
