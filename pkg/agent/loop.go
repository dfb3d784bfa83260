package agent

import (
	"context"

	"github.com/maripally-gautam/smartpad-assistant/pkg/llm"
	"github.com/maripally-gautam/smartpad-assistant/pkg/notes"
	"github.com/maripally-gautam/smartpad-assistant/pkg/protocol"
	"github.com/maripally-gautam/smartpad-assistant/pkg/tools"
)

// ToolCall records one executed function call within a turn.
type ToolCall struct {
	Name   string         `json:"name"`
	Args   map[string]any `json:"args,omitempty"`
	Result tools.Result   `json:"result"`
}

// Outcome is the result of one successful Run.
type Outcome struct {
	// FinalText is the model's final reply. Empty only under
	// CapPolicySilent when the iteration cap was exhausted.
	FinalText string

	// Calls lists the executed function calls in order.
	Calls []ToolCall

	// History is the extended working history: the input history plus the
	// user turn and every function exchange appended during the loop. The
	// final text turn is not included; the caller appends it through the
	// codec once the reply is persisted.
	History []protocol.Turn
}

// Run executes one conversational turn. It appends the user's text to a
// working copy of history, then loops: one model request per iteration,
// dispatching any function call the model issues and feeding its result back,
// until the model produces a final text reply or the iteration cap is hit.
//
// Transport, authorization, and protocol errors abort the loop immediately
// with no retry. Domain failures inside function calls never abort: they are
// returned to the model as ordinary results.
func (o *Orchestrator) Run(ctx context.Context, history []protocol.Turn, userText string, host notes.Host) (*Outcome, error) {
	dispatcher := tools.NewDispatcher(host)
	declarations := tools.Declarations()

	working := make([]protocol.Turn, len(history), len(history)+2)
	copy(working, history)
	working = append(working, protocol.NewTextTurn(protocol.RoleUser, userText))

	var calls []ToolCall

	for iteration := 0; iteration < o.maxIterations; iteration++ {
		o.setState(StateAwaitingResponse)

		resp, err := o.client.Generate(ctx, &llm.Request{
			Contents:          working,
			SystemInstruction: o.systemInstruction,
			Tools:             declarations,
			GenerationConfig:  o.generation,
		})
		if err != nil {
			o.setState(StateFailed)
			agentLog.Errorf("model request failed on iteration %d: %v", iteration+1, err)
			return nil, err
		}

		parts := resp.First()

		if call := firstFunctionCall(parts); call != nil {
			o.setState(StateExecutingFunction)
			agentLog.Debugf("dispatching function %s (iteration %d)", call.Name, iteration+1)

			result := dispatcher.Dispatch(call.Name, call.Args)
			calls = append(calls, ToolCall{
				Name:   call.Name,
				Args:   call.Args,
				Result: result,
			})
			working = protocol.AppendFunctionExchange(working, *call, result)
			continue
		}

		o.setState(StateDone)
		return &Outcome{
			FinalText: firstText(parts),
			Calls:     calls,
			History:   working,
		}, nil
	}

	agentLog.Warnf("iteration cap (%d) exhausted without a final reply", o.maxIterations)

	if o.capPolicy == CapPolicySilent {
		o.setState(StateDone)
		return &Outcome{Calls: calls, History: working}, nil
	}

	o.setState(StateFailed)
	return nil, ErrMaxIterations
}

func firstFunctionCall(parts []protocol.Part) *protocol.FunctionCall {
	for _, p := range parts {
		if p.FunctionCall != nil {
			return p.FunctionCall
		}
	}
	return nil
}

func firstText(parts []protocol.Part) string {
	for _, p := range parts {
		if p.IsText() && p.Text != "" {
			return p.Text
		}
	}
	return ""
}
