package pipeline

import (
	"encoding/json"
	"strings"

	"github.com/tenderlens/tenderlens/internal/common"
)

// Wire types for the generation endpoint (generateContent-style JSON).

type TextPart struct {
	Text string `json:"text"`
}

type ContentBlock struct {
	Parts []TextPart `json:"parts"`
}

type GenerationSettings struct {
	ResponseMIMEType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type RequestEnvelope struct {
	Contents          []ContentBlock     `json:"contents"`
	SystemInstruction *ContentBlock      `json:"systemInstruction,omitempty"`
	GenerationConfig  GenerationSettings `json:"generationConfig"`
}

type ResponseEnvelope struct {
	Candidates []struct {
		Content struct {
			Parts []TextPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// NewRequestEnvelope assembles the endpoint payload: the user query, the
// kind-specific instruction, and the contract the response must satisfy.
func NewRequestEnvelope(userQuery, instruction string, schema map[string]any) RequestEnvelope {
	return RequestEnvelope{
		Contents: []ContentBlock{
			{Parts: []TextPart{{Text: userQuery}}},
		},
		SystemInstruction: &ContentBlock{Parts: []TextPart{{Text: instruction}}},
		GenerationConfig: GenerationSettings{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	}
}

// DecodePayload pulls the JSON-encoded report fields out of a raw endpoint
// response. A missing candidate/part or a body that is not valid JSON
// surfaces as MALFORMED_RESPONSE.
func DecodePayload(raw []byte) (map[string]any, error) {
	var env ResponseEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, common.NewAppError(common.KindMalformedResponse, "decode response envelope", err)
	}
	if len(env.Candidates) == 0 || len(env.Candidates[0].Content.Parts) == 0 {
		return nil, common.Errorf(common.KindMalformedResponse, "response has no candidate content")
	}
	text := strings.TrimSpace(env.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return nil, common.Errorf(common.KindMalformedResponse, "response candidate is empty")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, common.NewAppError(common.KindMalformedResponse, "candidate text is not a JSON object", err)
	}
	return payload, nil
}
