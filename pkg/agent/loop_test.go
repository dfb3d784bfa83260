package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maripally-gautam/smartpad-assistant/pkg/llm"
	"github.com/maripally-gautam/smartpad-assistant/pkg/notes"
	"github.com/maripally-gautam/smartpad-assistant/pkg/protocol"
)

// scriptedClient returns each queued response in order and records the
// requests it received.
type scriptedClient struct {
	responses []*llm.Response
	err       error
	requests  []*llm.Request
}

func (c *scriptedClient) Generate(_ context.Context, req *llm.Request) (*llm.Response, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	if len(c.responses) == 0 {
		return nil, llm.NoResponse()
	}
	resp := c.responses[0]
	c.responses = c.responses[1:]
	return resp, nil
}

func textResponse(text string) *llm.Response {
	return &llm.Response{Candidates: []llm.Candidate{{
		Content: protocol.NewTextTurn(protocol.RoleModel, text),
	}}}
}

func callResponse(name string, args map[string]any) *llm.Response {
	return &llm.Response{Candidates: []llm.Candidate{{
		Content: protocol.Turn{
			Role:  protocol.RoleModel,
			Parts: []protocol.Part{{FunctionCall: &protocol.FunctionCall{Name: name, Args: args}}},
		},
	}}}
}

func TestRunDirectTextReply(t *testing.T) {
	client := &scriptedClient{responses: []*llm.Response{textResponse("hello!")}}
	orch := New(client)

	outcome, err := orch.Run(context.Background(), nil, "hi", notes.NewMemoryHost())
	require.NoError(t, err)

	assert.Equal(t, "hello!", outcome.FinalText)
	assert.Empty(t, outcome.Calls)
	assert.Equal(t, StateDone, orch.State())

	// History carries the user turn but not the final reply
	require.Len(t, outcome.History, 1)
	assert.Equal(t, protocol.RoleUser, outcome.History[0].Role)
	assert.Equal(t, "hi", outcome.History[0].Parts[0].Text)
}

func TestRunExecutesFunctionCalls(t *testing.T) {
	client := &scriptedClient{responses: []*llm.Response{
		callResponse("createNote", map[string]any{"title": "Groceries"}),
		callResponse("listNotes", map[string]any{}),
		callResponse("searchNotes", map[string]any{"query": "Groceries"}),
		callResponse("getAppStatus", nil),
		textResponse("Created it. You now have 1 note."),
	}}
	orch := New(client)
	host := notes.NewMemoryHost()

	outcome, err := orch.Run(context.Background(), nil, "make a groceries note", host)
	require.NoError(t, err)

	assert.Equal(t, "Created it. You now have 1 note.", outcome.FinalText)
	require.Len(t, outcome.Calls, 4)
	assert.Equal(t, "createNote", outcome.Calls[0].Name)
	assert.True(t, outcome.Calls[0].Result.Success())
	assert.Equal(t, "listNotes", outcome.Calls[1].Name)

	// Later calls observed the first call's effect
	assert.Equal(t, 1, outcome.Calls[1].Result["total"])
	assert.Equal(t, 1, outcome.Calls[2].Result["count"])

	// user turn + 4 exchanges of 2 turns each
	assert.Len(t, outcome.History, 9)

	// Every request carried the full declaration set
	require.Len(t, client.requests, 5)
	for _, req := range client.requests {
		assert.Len(t, req.Tools, 11)
	}
}

func TestRunFailedCallFedBackToModel(t *testing.T) {
	client := &scriptedClient{responses: []*llm.Response{
		callResponse("deleteNote", map[string]any{"noteId": "ghost"}),
		textResponse("I couldn't find that note."),
	}}
	orch := New(client)

	outcome, err := orch.Run(context.Background(), nil, "delete my note", notes.NewMemoryHost())
	require.NoError(t, err)

	require.Len(t, outcome.Calls, 1)
	assert.False(t, outcome.Calls[0].Result.Success())

	// The failure travelled back as a function response, not an abort
	lastTurn := outcome.History[len(outcome.History)-1]
	require.NotNil(t, lastTurn.Parts[0].FunctionResponse)
	assert.Equal(t, false, lastTurn.Parts[0].FunctionResponse.Response["success"])
}

func TestRunIterationCapErrors(t *testing.T) {
	// The model never stops calling functions
	responses := make([]*llm.Response, 10)
	for i := range responses {
		responses[i] = callResponse("getAppStatus", nil)
	}
	client := &scriptedClient{responses: responses}
	orch := New(client)

	_, err := orch.Run(context.Background(), nil, "loop forever", notes.NewMemoryHost())
	assert.ErrorIs(t, err, ErrMaxIterations)
	assert.Equal(t, StateFailed, orch.State())

	// Exactly the cap's worth of requests went out
	assert.Len(t, client.requests, DefaultMaxIterations)
}

func TestRunIterationCapSilent(t *testing.T) {
	responses := make([]*llm.Response, 10)
	for i := range responses {
		responses[i] = callResponse("getAppStatus", nil)
	}
	client := &scriptedClient{responses: responses}
	orch := New(client, WithCapPolicy(CapPolicySilent))

	outcome, err := orch.Run(context.Background(), nil, "loop forever", notes.NewMemoryHost())
	require.NoError(t, err)
	assert.Empty(t, outcome.FinalText)
	assert.Len(t, outcome.Calls, DefaultMaxIterations)
	assert.Equal(t, StateDone, orch.State())
}

func TestRunCustomIterationCap(t *testing.T) {
	responses := make([]*llm.Response, 10)
	for i := range responses {
		responses[i] = callResponse("getAppStatus", nil)
	}
	client := &scriptedClient{responses: responses}
	orch := New(client, WithMaxIterations(2))

	_, err := orch.Run(context.Background(), nil, "loop", notes.NewMemoryHost())
	assert.ErrorIs(t, err, ErrMaxIterations)
	assert.Len(t, client.requests, 2)
}

func TestRunTransportErrorAborts(t *testing.T) {
	client := &scriptedClient{err: llm.RateLimited()}
	orch := New(client)

	_, err := orch.Run(context.Background(), nil, "hi", notes.NewMemoryHost())
	require.Error(t, err)
	assert.True(t, llm.IsKind(err, llm.KindRateLimited))
	assert.Equal(t, StateFailed, orch.State())
	assert.Len(t, client.requests, 1)
}

func TestRunPreservesInputHistory(t *testing.T) {
	client := &scriptedClient{responses: []*llm.Response{textResponse("again?")}}
	orch := New(client)

	prior := []protocol.Turn{
		protocol.NewTextTurn(protocol.RoleUser, "first message"),
		protocol.NewTextTurn(protocol.RoleModel, "first reply"),
	}

	outcome, err := orch.Run(context.Background(), prior, "second message", notes.NewMemoryHost())
	require.NoError(t, err)

	require.Len(t, outcome.History, 3)
	assert.Equal(t, "first message", outcome.History[0].Parts[0].Text)
	assert.Equal(t, "first reply", outcome.History[1].Parts[0].Text)
	assert.Equal(t, "second message", outcome.History[2].Parts[0].Text)

	// The input slice itself was not mutated
	assert.Len(t, prior, 2)
}
