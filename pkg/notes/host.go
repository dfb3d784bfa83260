package notes

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNoteNotFound is returned by Host implementations when an ID does not
// resolve. Callers that must not fail (the dispatch table) translate it into
// a domain result instead of propagating it.
var ErrNoteNotFound = fmt.Errorf("note not found")

// Host is the collaborator interface the note application exposes to the
// assistant engine. Snapshot accessors return copies; mutations are applied
// immediately and are visible to subsequent snapshot calls.
type Host interface {
	// Notes returns a snapshot of all notes, most recently modified first.
	Notes() []Note

	// Settings returns a snapshot of the current application settings.
	Settings() Settings

	// CreateNote stores a new note and returns its assigned ID.
	CreateNote(n Note) (string, error)

	// UpdateNote replaces the stored note with the same ID.
	UpdateNote(n Note) error

	// DeleteNote removes the note with the given ID.
	DeleteNote(id string) error

	// UpdateSettings applies a partial settings update.
	UpdateSettings(p SettingsPatch) error
}

// MemoryHost is an in-memory Host implementation. All operations are
// thread-safe. It backs the CLI and the engine's tests; real host
// applications supply their own storage-backed implementation.
type MemoryHost struct {
	mu       sync.RWMutex
	notes    map[string]*Note
	settings Settings
}

// NewMemoryHost creates an empty MemoryHost with default settings.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		notes: make(map[string]*Note),
		settings: Settings{
			Theme:              "light",
			AutoSave:           true,
			AllowNotifications: true,
		},
	}
}

// Notes returns a snapshot of all notes sorted by ModifiedAt, newest first.
func (h *MemoryHost) Notes() []Note {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]Note, 0, len(h.notes))
	for _, n := range h.notes {
		result = append(result, *n)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ModifiedAt.After(result[j].ModifiedAt)
	})

	return result
}

// Settings returns a snapshot of the current settings.
func (h *MemoryHost) Settings() Settings {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.settings
}

// CreateNote stores a new note, assigning an ID and timestamps when unset.
func (h *MemoryHost) CreateNote(n Note) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	now := time.Now()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	if n.ModifiedAt.IsZero() {
		n.ModifiedAt = now
	}

	stored := n
	h.notes[n.ID] = &stored
	return n.ID, nil
}

// UpdateNote replaces the stored note with the same ID.
func (h *MemoryHost) UpdateNote(n Note) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.notes[n.ID]; !exists {
		return fmt.Errorf("%w: %s", ErrNoteNotFound, n.ID)
	}

	stored := n
	h.notes[n.ID] = &stored
	return nil
}

// DeleteNote removes the note with the given ID.
func (h *MemoryHost) DeleteNote(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.notes[id]; !exists {
		return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}

	delete(h.notes, id)
	return nil
}

// UpdateSettings applies a partial settings update.
func (h *MemoryHost) UpdateSettings(p SettingsPatch) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	p.Apply(&h.settings)
	return nil
}
