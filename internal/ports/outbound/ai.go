// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import "context"

// AIClient is the port to the remote text-generation service. The
// adapter handles transport only; everything returned inside the
// envelope is untrusted until the reconciliation engine validates it.
type AIClient interface {
	Generate(ctx context.Context, req AIRequest) (*AIEnvelope, error)
}

// AIRequest is one generation call: a single user-role prompt, an
// optional system instruction restating the output contract, and
// sampling parameters tuned per operation.
type AIRequest struct {
	Purpose           string
	Language          string
	Prompt            string
	SystemInstruction string
	Generation        GenerationConfig
}

// GenerationConfig carries the sampling parameters and, where the
// provider supports it, a machine-checkable response schema.
type GenerationConfig struct {
	Temperature      float64
	TopP             float64
	TopK             int
	ResponseMIMEType string
	ResponseSchema   []byte
}

// AIEnvelope is the provider's multi-level response envelope
// (candidate list -> content -> parts). Every level is optional: the
// extractor, not the adapter, decides what a missing level means.
type AIEnvelope struct {
	Candidates []AICandidate `json:"candidates"`
}

// AICandidate is one generation candidate.
type AICandidate struct {
	Content *AIContent `json:"content,omitempty"`
}

// AIContent wraps the candidate's parts.
type AIContent struct {
	Parts []AIPart `json:"parts,omitempty"`
}

// AIPart is the tagged union of response payload shapes: a textual
// payload the engine must parse, or a structured function-call argument
// object some providers emit instead.
type AIPart struct {
	Text         string          `json:"text,omitempty"`
	FunctionCall *AIFunctionCall `json:"functionCall,omitempty"`
}

// AIFunctionCall carries already-structured arguments; when present the
// args object bypasses text parsing entirely.
type AIFunctionCall struct {
	Name string         `json:"name,omitempty"`
	Args map[string]any `json:"args,omitempty"`
}
