// Package agent implements the bounded request/execute/continue loop that
// drives one conversational turn against the remote model.
//
// Given the accumulated protocol history, the user's new text, and a host to
// mutate, the orchestrator issues model requests, executes any function calls
// the model responds with through the dispatch table, feeds the results back
// as synthetic turns, and terminates on the first final text reply or on the
// iteration cap.
package agent

import (
	"errors"
	"sync"

	"github.com/maripally-gautam/smartpad-assistant/pkg/llm"
	"github.com/maripally-gautam/smartpad-assistant/pkg/logging"
)

var agentLog *logging.Logger

func init() {
	var err error
	agentLog, err = logging.NewLogger("agent")
	if err != nil {
		agentLog.Warnf("Failed to initialize agent log file, using stderr fallback: %v", err)
	}
}

// ErrMaxIterations is returned under CapPolicyError when the iteration cap is
// reached without the model producing a final text reply.
var ErrMaxIterations = errors.New("model did not produce a final reply within the iteration limit")

// DefaultMaxIterations caps the number of model requests per user message.
const DefaultMaxIterations = 5

// DefaultSystemInstruction is sent with every request unless overridden.
const DefaultSystemInstruction = "You are the assistant built into Smartpad, a personal " +
	"note-taking application. You help the user manage their notes, reminders, and " +
	"settings through the provided functions. Use a function whenever the user asks " +
	"for something a function can do; answer directly otherwise. Keep replies short " +
	"and concrete, and confirm the outcome of any change you made."

// CapPolicy decides what happens when the iteration cap is exhausted without
// a final text reply.
type CapPolicy int

const (
	// CapPolicyError surfaces ErrMaxIterations. This is the default.
	CapPolicyError CapPolicy = iota

	// CapPolicySilent returns an empty final text with no error, for hosts
	// that prefer a silent reply over a failure.
	CapPolicySilent
)

// State is the orchestrator loop state, exposed for observability and tests.
type State int

const (
	StateIdle State = iota
	StateAwaitingResponse
	StateExecutingFunction
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateAwaitingResponse:
		return "awaiting_response"
	case StateExecutingFunction:
		return "executing_function"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Orchestrator drives the agent loop. It holds no conversation state of its
// own: history is passed into Run and the extended history is returned, so
// one orchestrator serves any number of conversations.
type Orchestrator struct {
	client            llm.Client
	systemInstruction string
	maxIterations     int
	generation        llm.GenerationConfig
	capPolicy         CapPolicy

	stateMu sync.Mutex
	state   State
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithSystemInstruction overrides the static system instruction.
func WithSystemInstruction(instruction string) Option {
	return func(o *Orchestrator) {
		o.systemInstruction = instruction
	}
}

// WithMaxIterations overrides the iteration cap. Values below 1 are ignored.
func WithMaxIterations(max int) Option {
	return func(o *Orchestrator) {
		if max > 0 {
			o.maxIterations = max
		}
	}
}

// WithGenerationConfig overrides the generation parameters.
func WithGenerationConfig(cfg llm.GenerationConfig) Option {
	return func(o *Orchestrator) {
		o.generation = cfg
	}
}

// WithCapPolicy sets the cap-exhaustion policy.
func WithCapPolicy(policy CapPolicy) Option {
	return func(o *Orchestrator) {
		o.capPolicy = policy
	}
}

// New creates an orchestrator bound to the given model client.
func New(client llm.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:            client,
		systemInstruction: DefaultSystemInstruction,
		maxIterations:     DefaultMaxIterations,
		generation: llm.GenerationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 1024,
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the state the loop most recently entered.
func (o *Orchestrator) State() State {
	o.stateMu.Lock()
	defer o.stateMu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.stateMu.Lock()
	o.state = s
	o.stateMu.Unlock()
}
