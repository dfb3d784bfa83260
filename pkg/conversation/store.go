package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/maripally-gautam/smartpad-assistant/pkg/agent"
	"github.com/maripally-gautam/smartpad-assistant/pkg/logging"
	"github.com/maripally-gautam/smartpad-assistant/pkg/notes"
	"github.com/maripally-gautam/smartpad-assistant/pkg/protocol"
	"github.com/maripally-gautam/smartpad-assistant/pkg/storage"
)

const (
	conversationsKey = "conversations"
	activeKey        = "active"
)

var (
	// ErrConversationNotFound is returned when an operation names an unknown
	// conversation id.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrConversationBusy is returned when a message is sent to a
	// conversation whose previous turn has not completed.
	ErrConversationBusy = errors.New("conversation has a turn in flight")
)

// Store owns every conversation: transcripts, their protocol sessions, the
// active-conversation pointer, and persistence. One orchestrator serves all
// conversations; the store serializes turns within each one.
type Store struct {
	kv   storage.KV
	orch *agent.Orchestrator
	host notes.Host
	log  *logging.Logger

	mu            sync.Mutex
	conversations map[string]*Conversation
	sessions      map[string][]protocol.Turn
	inFlight      map[string]bool
	activeID      string
}

// NewStore loads any persisted conversations from kv and returns a store
// ready to send messages through orch against host.
func NewStore(kv storage.KV, orch *agent.Orchestrator, host notes.Host) (*Store, error) {
	log, _ := logging.NewLogger("conversation")

	s := &Store{
		kv:            kv,
		orch:          orch,
		host:          host,
		log:           log,
		conversations: make(map[string]*Conversation),
		sessions:      make(map[string][]protocol.Turn),
		inFlight:      make(map[string]bool),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := s.kv.Get(conversationsKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load conversations: %w", err)
	}

	var list []*Conversation
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("failed to decode conversations: %w", err)
	}
	for _, c := range list {
		s.conversations[c.ID] = c
	}

	if data, err := s.kv.Get(activeKey); err == nil {
		id := string(data)
		if c, ok := s.conversations[id]; ok {
			s.activeID = id
			s.sessions[id] = c.rebuildSession()
		}
	}

	s.log.Infof("loaded %d conversations", len(list))
	return nil
}

// persist writes the full conversation list and the active pointer. Callers
// hold s.mu.
func (s *Store) persist() error {
	list := make([]*Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode conversations: %w", err)
	}
	if err := s.kv.Set(conversationsKey, data); err != nil {
		return err
	}
	return s.kv.Set(activeKey, []byte(s.activeID))
}

// CreateConversation starts a new empty conversation and makes it active.
func (s *Store) CreateConversation() (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := newConversation()
	s.conversations[c.ID] = c
	s.sessions[c.ID] = nil
	s.activeID = c.ID

	if err := s.persist(); err != nil {
		return nil, err
	}
	s.log.Infof("created conversation %s", c.ID)
	return c, nil
}

// SelectConversation makes an existing conversation active and rebuilds its
// protocol session from the transcript. Function exchanges are not part of
// the rebuilt session; only user and assistant text carries over.
func (s *Store) SelectConversation(id string) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.conversations[id]
	if !ok {
		return nil, ErrConversationNotFound
	}
	s.activeID = id
	s.sessions[id] = c.rebuildSession()

	if err := s.persist(); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteConversation removes a conversation and its session. Deleting the
// active conversation leaves no conversation active.
func (s *Store) DeleteConversation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[id]; !ok {
		return ErrConversationNotFound
	}
	if s.inFlight[id] {
		return ErrConversationBusy
	}
	delete(s.conversations, id)
	delete(s.sessions, id)
	if s.activeID == id {
		s.activeID = ""
	}
	return s.persist()
}

// ClearAll removes every conversation.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.inFlight {
		if s.inFlight[id] {
			return ErrConversationBusy
		}
	}
	s.conversations = make(map[string]*Conversation)
	s.sessions = make(map[string][]protocol.Turn)
	s.activeID = ""
	return s.persist()
}

// Conversations lists every conversation, most recently used first.
func (s *Store) Conversations() []*Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]*Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		at, bt := a.LastMessageAt, b.LastMessageAt
		if at.IsZero() {
			at = a.CreatedAt
		}
		if bt.IsZero() {
			bt = b.CreatedAt
		}
		if !at.Equal(bt) {
			return at.After(bt)
		}
		return a.ID < b.ID
	})
	return list
}

// Active returns the active conversation, or nil when none is selected.
func (s *Store) Active() *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversations[s.activeID]
}

// SendMessage runs one turn of the active conversation: the user text is
// recorded, the agent loop runs against the current session, and on success
// the assistant's reply is recorded with its executed function calls. When no
// conversation is active, a new one is created and made active first.
//
// On failure the user message stays in the transcript and the session, and
// exactly one system message describing the error is appended; the error is
// also returned. Concurrent sends to the same conversation are rejected with
// ErrConversationBusy.
func (s *Store) SendMessage(ctx context.Context, text string) (*Message, error) {
	s.mu.Lock()
	c, ok := s.conversations[s.activeID]
	if !ok {
		c = newConversation()
		s.conversations[c.ID] = c
		s.sessions[c.ID] = nil
		s.activeID = c.ID
		s.log.Infof("created conversation %s", c.ID)
	}
	if s.inFlight[c.ID] {
		s.mu.Unlock()
		return nil, ErrConversationBusy
	}
	s.inFlight[c.ID] = true

	userMsg := newMessage(RoleUser, text, nil)
	c.Messages = append(c.Messages, userMsg)
	c.LastMessageAt = userMsg.Timestamp
	// The title derives from the first message only, whatever it says
	if len(c.Messages) == 1 {
		c.Title = deriveTitle(text)
	}
	// The user message is durable before the round trip begins
	if err := s.persist(); err != nil {
		s.inFlight[c.ID] = false
		s.mu.Unlock()
		return nil, err
	}
	session := s.sessions[c.ID]
	s.mu.Unlock()

	outcome, err := s.orch.Run(ctx, session, text, s.host)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.inFlight[c.ID] = false }()

	if err != nil {
		s.log.Errorf("turn failed in conversation %s: %v", c.ID, err)

		// The user turn survives the failure so a retry has context.
		s.sessions[c.ID] = append(session, protocol.NewTextTurn(protocol.RoleUser, text))

		notice := newMessage(RoleSystem, "Error: "+err.Error(), nil)
		c.Messages = append(c.Messages, notice)
		c.LastMessageAt = notice.Timestamp
		if perr := s.persist(); perr != nil {
			s.log.Errorf("failed to persist after turn error: %v", perr)
		}
		return nil, err
	}

	reply := newMessage(RoleAssistant, outcome.FinalText, outcome.Calls)
	c.Messages = append(c.Messages, reply)
	c.LastMessageAt = reply.Timestamp
	s.sessions[c.ID] = append(outcome.History,
		protocol.NewTextTurn(protocol.RoleModel, outcome.FinalText))

	if err := s.persist(); err != nil {
		return nil, err
	}
	return &reply, nil
}
