package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tenderlens/tenderlens/constants"
	"github.com/tenderlens/tenderlens/internal/common"
)

// Registry holds the compiled report contracts, one per report kind.
// Contracts are immutable and compiled once at construction.
type Registry struct {
	schemas map[constants.ReportKind]*jsonschema.Schema
	rawMaps map[constants.ReportKind]map[string]any
	logger  *slog.Logger
}

func NewRegistry(logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	rawMaps := map[constants.ReportKind]map[string]any{
		constants.ReportCompliance: BuildComplianceSchema(),
		constants.ReportExtraction: BuildExtractionSchema(),
	}
	schemas := make(map[constants.ReportKind]*jsonschema.Schema, len(rawMaps))
	for kind, m := range rawMaps {
		s, err := compileSchema(m)
		if err != nil {
			return nil, fmt.Errorf("compile %s contract: %w", string(kind), err)
		}
		schemas[kind] = s
	}
	return &Registry{schemas: schemas, rawMaps: rawMaps, logger: logger}, nil
}

// SchemaFor returns the contract for kind as a generic map, suitable for
// embedding in a generation request as its responseSchema.
func (r *Registry) SchemaFor(kind constants.ReportKind) map[string]any {
	return r.rawMaps[kind]
}

// Validate checks a decoded payload against the contract for kind and, on
// success, returns the kind-stamped Report. Unknown fields are dropped;
// a missing required field or an out-of-domain enum value rejects the whole
// payload. No field is ever defaulted.
func (r *Registry) Validate(kind constants.ReportKind, payload map[string]any) (Report, error) {
	schema, ok := r.schemas[kind]
	if !ok {
		return Report{}, common.Errorf(common.KindValidationError, "no contract registered for kind %q", string(kind))
	}

	pruned := pruneUnknown(payload, r.rawMaps[kind])
	if err := schema.Validate(pruned); err != nil {
		r.logger.Warn("contract.validate.rejected", "kind", string(kind), "error", err)
		return Report{}, common.NewAppError(common.KindValidationError,
			fmt.Sprintf("payload does not satisfy the %s contract", string(kind)), err)
	}

	encoded, err := json.Marshal(pruned)
	if err != nil {
		return Report{}, common.NewAppError(common.KindValidationError, "re-encode validated payload", err)
	}

	rep := Report{Kind: kind}
	switch kind {
	case constants.ReportCompliance:
		var c ComplianceReport
		if err := json.Unmarshal(encoded, &c); err != nil {
			return Report{}, common.NewAppError(common.KindValidationError, "decode compliance report", err)
		}
		rep.Compliance = &c
	case constants.ReportExtraction:
		var e ExtractionReport
		if err := json.Unmarshal(encoded, &e); err != nil {
			return Report{}, common.NewAppError(common.KindValidationError, "decode extraction report", err)
		}
		rep.Extraction = &e
	}

	r.logger.Debug("contract.validate.ok", "kind", string(kind))
	return rep, nil
}

// pruneUnknown walks value alongside the schema and removes object keys the
// contract does not declare, recursing into nested objects and array items.
func pruneUnknown(value any, schema map[string]any) any {
	switch tv := value.(type) {
	case map[string]any:
		props, _ := schema["properties"].(map[string]any)
		if props == nil {
			return tv
		}
		for k, v := range tv {
			ps, ok := props[k].(map[string]any)
			if !ok {
				delete(tv, k)
				continue
			}
			tv[k] = pruneUnknown(v, ps)
		}
		return tv
	case []any:
		items, _ := schema["items"].(map[string]any)
		if items == nil {
			return tv
		}
		for i, it := range tv {
			tv[i] = pruneUnknown(it, items)
		}
		return tv
	default:
		return value
	}
}

func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}
