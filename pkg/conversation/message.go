// Package conversation persists chat transcripts and reconciles them with the
// protocol history the agent loop consumes. A Store owns every conversation,
// serializes turns within each one, and survives restarts through a storage
// backend.
package conversation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maripally-gautam/smartpad-assistant/pkg/agent"
)

// Message roles as persisted. System messages carry failure notices the
// assistant never produced itself.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one transcript entry.
type Message struct {
	ID        string           `json:"id"`
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	ToolCalls []agent.ToolCall `json:"toolCalls,omitempty"`
}

func newMessage(role, content string, calls []agent.ToolCall) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		ToolCalls: calls,
	}
}

// CallNames returns the names of the message's function calls in order,
// comma separated. Empty when the message carried no calls.
func (m Message) CallNames() string {
	if len(m.ToolCalls) == 0 {
		return ""
	}
	names := make([]string, len(m.ToolCalls))
	for i, c := range m.ToolCalls {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

// CallArgs returns each call's arguments keyed by function name. Calls that
// repeat a name are suffixed with their position.
func (m Message) CallArgs() map[string]map[string]any {
	if len(m.ToolCalls) == 0 {
		return nil
	}
	args := make(map[string]map[string]any, len(m.ToolCalls))
	for i, c := range m.ToolCalls {
		key := c.Name
		if _, taken := args[key]; taken {
			key = fmt.Sprintf("%s#%d", c.Name, i+1)
		}
		args[key] = c.Args
	}
	return args
}

// CallResults renders each call's result on its own line, in execution order.
func (m Message) CallResults() string {
	if len(m.ToolCalls) == 0 {
		return ""
	}
	lines := make([]string, len(m.ToolCalls))
	for i, c := range m.ToolCalls {
		keys := make([]string, 0, len(c.Result))
		for k := range c.Result {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]string, len(keys))
		for j, k := range keys {
			fields[j] = fmt.Sprintf("%s=%v", k, c.Result[k])
		}
		lines[i] = fmt.Sprintf("%s: %s", c.Name, strings.Join(fields, " "))
	}
	return strings.Join(lines, "\n")
}
