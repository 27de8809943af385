package constants

import "strings"

// AnalysisKind selects which analysis the pipeline runs.
type AnalysisKind string

const (
	// FullAudit compares a requirements document against a response document.
	FullAudit AnalysisKind = "FULL_AUDIT"
	// ExtractionOnly distills a single requirements document.
	ExtractionOnly AnalysisKind = "EXTRACTION_ONLY"
)

// ReportKind tags the shape of a validated report.
type ReportKind string

const (
	ReportCompliance ReportKind = "COMPLIANCE"
	ReportExtraction ReportKind = "EXTRACTION"
)

// ReportKind maps an analysis kind to the report shape it produces.
func (k AnalysisKind) ReportKind() ReportKind {
	if k == ExtractionOnly {
		return ReportExtraction
	}
	return ReportCompliance
}

// ComplianceFlag is the per-finding verdict in a compliance report.
type ComplianceFlag string

const (
	Compliant    ComplianceFlag = "COMPLIANT"
	Partial      ComplianceFlag = "PARTIAL"
	NonCompliant ComplianceFlag = "NON-COMPLIANT"
)

var allComplianceFlags = []ComplianceFlag{Compliant, Partial, NonCompliant}

// RequirementCategory classifies an extracted requirement.
type RequirementCategory string

const (
	CategoryScope      RequirementCategory = "SCOPE"
	CategoryTechnical  RequirementCategory = "TECHNICAL"
	CategoryCommercial RequirementCategory = "COMMERCIAL"
	CategoryAdmin      RequirementCategory = "ADMIN"
	CategoryHSE        RequirementCategory = "HSE"
	CategoryLogistics  RequirementCategory = "LOGISTICS"
	CategoryOther      RequirementCategory = "OTHER"
)

var allCategories = []RequirementCategory{
	CategoryScope,
	CategoryTechnical,
	CategoryCommercial,
	CategoryAdmin,
	CategoryHSE,
	CategoryLogistics,
	CategoryOther,
}

// StrictnessLevel is the severity/cost classification of a requirement.
type StrictnessLevel string

const (
	StrictMandatory  StrictnessLevel = "MANDATORY"
	StrictCritical   StrictnessLevel = "CRITICAL"
	StrictHighCost   StrictnessLevel = "HIGH_COST"
	StrictHiddenCost StrictnessLevel = "HIDDEN_COST"
)

var allStrictnessLevels = []StrictnessLevel{
	StrictMandatory,
	StrictCritical,
	StrictHighCost,
	StrictHiddenCost,
}

// ComplianceFlags returns the flag domain as strings, for schema enums.
func ComplianceFlags() []string {
	out := make([]string, len(allComplianceFlags))
	for i, f := range allComplianceFlags {
		out[i] = string(f)
	}
	return out
}

// RequirementCategories returns the category domain as strings.
func RequirementCategories() []string {
	out := make([]string, len(allCategories))
	for i, c := range allCategories {
		out[i] = string(c)
	}
	return out
}

// StrictnessLevels returns the strictness domain as strings.
func StrictnessLevels() []string {
	out := make([]string, len(allStrictnessLevels))
	for i, s := range allStrictnessLevels {
		out[i] = string(s)
	}
	return out
}

// CanonicalizeCategory maps free-form category labels onto the fixed
// enumeration. Unknown labels land on OTHER.
func CanonicalizeCategory(input string) (RequirementCategory, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	if normalized == "" {
		return CategoryOther, false
	}

	synonyms := map[string]RequirementCategory{
		"SAFETY":         CategoryHSE,
		"ENVIRONMENT":    CategoryHSE,
		"HEALTH":         CategoryHSE,
		"FINANCIAL":      CategoryCommercial,
		"PRICING":        CategoryCommercial,
		"CONTRACTUAL":    CategoryAdmin,
		"ADMINISTRATIVE": CategoryAdmin,
		"TRANSPORT":      CategoryLogistics,
		"DELIVERY":       CategoryLogistics,
	}
	if c, ok := synonyms[normalized]; ok {
		return c, true
	}

	for _, c := range allCategories {
		if normalized == string(c) {
			return c, true
		}
	}
	return CategoryOther, false
}
