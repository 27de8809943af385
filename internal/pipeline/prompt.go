package pipeline

import (
	"strings"

	"github.com/tenderlens/tenderlens/constants"
)

// BuildInstruction returns the fixed system instruction for the analysis
// kind. The response shape itself is enforced by the contract schema; the
// instruction carries the analyst role and the scoring rubric.
func BuildInstruction(kind constants.AnalysisKind) string {
	if kind == constants.ExtractionOnly {
		return strings.Join([]string{
			"You are a senior tender analyst. Distill the provided requirements document.",
			"Return ONLY JSON that matches the provided schema.",
			"Summarize the project essence: title, location, one-line scope, deliverables, constraints, risks, timeline.",
			"Build a compliance matrix: one entry per explicit requirement.",
			"Classify each entry with a category from " + strings.Join(constants.RequirementCategories(), ", ") + ".",
			"Grade each entry's strictness: MANDATORY for hard obligations, CRITICAL for award-deciding items,",
			"HIGH_COST for items with significant cost exposure, HIDDEN_COST for obligations easy to underestimate.",
			"Quote requirements faithfully; never invent requirements that are not in the document.",
		}, " ")
	}
	return strings.Join([]string{
		"You are a senior tender compliance auditor. Compare the requirements document against the bidder's response.",
		"Return ONLY JSON that matches the provided schema.",
		"Produce one finding per requirement: quote the requirement, cite the closest response excerpt,",
		"set 'compliance' to " + strings.Join(constants.ComplianceFlags(), ", ") + " and",
		"set 'compliance_score' to 1 for COMPLIANT, 0.5 for PARTIAL, 0 for NON-COMPLIANT.",
		"Summarize the project title, the scope, and an executive summary of the overall compliance posture.",
		"Judge only on the documents provided; absence of evidence in the response is non-compliance.",
	}, " ")
}

// BuildUserQuery labels and concatenates the extracted document texts.
func BuildUserQuery(kind constants.AnalysisKind, requirementsText, responseText string) string {
	var b strings.Builder
	b.WriteString("REQUIREMENTS DOCUMENT:\n")
	b.WriteString(requirementsText)
	if kind == constants.FullAudit {
		b.WriteString("\n\nRESPONSE DOCUMENT:\n")
		b.WriteString(responseText)
	}
	return b.String()
}
