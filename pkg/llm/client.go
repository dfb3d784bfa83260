// Package llm provides the provider-agnostic client abstraction used by the
// agent to talk to a remote generative model service.
//
// The agent layer depends only on the Client interface; concrete transports
// (see the gemini subpackage) handle API communication and translate HTTP
// failures into the typed errors defined in errors.go. Clients are
// non-streaming: one Generate call produces one complete response.
package llm

import (
	"context"

	"github.com/maripally-gautam/smartpad-assistant/pkg/protocol"
	"github.com/maripally-gautam/smartpad-assistant/pkg/tools"
)

// Client sends one request to the remote model and returns its response.
type Client interface {
	// Generate issues a single completion request. Transport, authorization,
	// and protocol failures are returned as *Error; there is no automatic
	// retry at this layer.
	Generate(ctx context.Context, req *Request) (*Response, error)
}

// GenerationConfig bounds the model's output.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// Request is one complete model request: the accumulated turn history, the
// static system instruction, the full function declaration set, and the
// generation parameters.
type Request struct {
	Contents          []protocol.Turn
	SystemInstruction string
	Tools             []tools.Declaration
	GenerationConfig  GenerationConfig
}

// Candidate is one model-produced completion.
type Candidate struct {
	Content      protocol.Turn `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

// Response is a successful model response. Implementations guarantee at
// least one candidate; an empty candidate list is surfaced as a protocol
// error instead.
type Response struct {
	Candidates []Candidate `json:"candidates"`
}

// First returns the parts of the first candidate.
func (r *Response) First() []protocol.Part {
	if len(r.Candidates) == 0 {
		return nil
	}
	return r.Candidates[0].Content.Parts
}
