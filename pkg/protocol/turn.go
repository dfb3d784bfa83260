// Package protocol defines the wire-level turn representation exchanged with
// the remote generative model, and the codec between the application's display
// messages and those turns.
//
// A Turn is a role-tagged list of parts; each part is exactly one of plain
// text, a model-issued function call, or a function call's result. The JSON
// shape matches the generateContent wire format, so turns marshal directly
// into request bodies.
package protocol

// Role tags a turn with its wire-level originator.
type Role string

const (
	// RoleUser marks turns originating from the user, including synthetic
	// function-response turns fed back to the model.
	RoleUser Role = "user"

	// RoleModel marks turns produced by the model.
	RoleModel Role = "model"
)

// Turn is one exchange unit in the wire protocol.
type Turn struct {
	Role  Role   `json:"role"`
	Parts []Part `json:"parts"`
}

// Part is an atomic content unit within a turn. Exactly one field is set.
type Part struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *FunctionResponse `json:"functionResponse,omitempty"`
}

// FunctionCall is a model-issued request to invoke a declared function.
type FunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// FunctionResponse carries a function's result back to the model.
type FunctionResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

// IsText reports whether the part is a plain text part.
func (p Part) IsText() bool {
	return p.FunctionCall == nil && p.FunctionResponse == nil
}
