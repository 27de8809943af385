package pipeline

import (
	"context"

	"github.com/tenderlens/tenderlens/constants"
	"github.com/tenderlens/tenderlens/internal/extract"
)

// Transport is the retrying exchange with the generation endpoint.
type Transport interface {
	Send(ctx context.Context, url string, body any) ([]byte, error)
}

// Request pairs the uploaded documents with the analysis kind. FULL_AUDIT
// requires both documents; EXTRACTION_ONLY requires the requirements
// document only.
type Request struct {
	Kind         constants.AnalysisKind
	Requirements *extract.Document
	Response     *extract.Document
	UserID       string
}

// requiredDocuments returns the documents the kind needs, with their roles.
func (r Request) requiredDocuments() (missing []string, docs []extract.Document) {
	if r.Requirements == nil {
		missing = append(missing, "requirements document")
	} else {
		docs = append(docs, *r.Requirements)
	}
	if r.Kind == constants.FullAudit {
		if r.Response == nil {
			missing = append(missing, "response document")
		} else {
			docs = append(docs, *r.Response)
		}
	}
	return missing, docs
}
