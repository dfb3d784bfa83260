package protocol

// Message role names as used by the conversation layer. The codec maps them
// onto wire roles; system messages never travel upstream.
const (
	messageRoleUser      = "user"
	messageRoleAssistant = "assistant"
)

// NewTextTurn returns a turn containing a single text part.
func NewTextTurn(role Role, text string) Turn {
	return Turn{
		Role:  role,
		Parts: []Part{{Text: text}},
	}
}

// FromMessage converts a display message into its wire turn. User messages map
// to the user role, assistant messages to the model role. Any other role
// (system error messages in particular) is excluded from the wire history, and
// ok is false.
func FromMessage(role, content string) (Turn, bool) {
	switch role {
	case messageRoleUser:
		return NewTextTurn(RoleUser, content), true
	case messageRoleAssistant:
		return NewTextTurn(RoleModel, content), true
	}
	return Turn{}, false
}

// AppendFunctionExchange extends history with exactly two turns: a model turn
// restating the function call, and a user turn carrying its result. This is
// the only way function-call turns enter the in-memory history; they are never
// rebuilt from persisted messages.
func AppendFunctionExchange(history []Turn, call FunctionCall, result map[string]any) []Turn {
	history = append(history, Turn{
		Role:  RoleModel,
		Parts: []Part{{FunctionCall: &call}},
	})
	history = append(history, Turn{
		Role:  RoleUser,
		Parts: []Part{{FunctionResponse: &FunctionResponse{
			Name:     call.Name,
			Response: result,
		}}},
	})
	return history
}
