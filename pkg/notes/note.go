// Package notes defines the note-taking domain model the assistant operates on:
// notes, application settings, and the host interface through which the engine
// reads and mutates them.
//
// The engine itself never owns note storage. The host application supplies an
// implementation of the Host interface; MemoryHost is a reference implementation
// used by the CLI and by tests.
package notes

import (
	"time"
)

// Note is a single note as seen by the assistant engine.
// Content may contain HTML markup produced by the host's rich-text editor.
type Note struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	IsPinned    bool      `json:"isPinned"`
	IsFavourite bool      `json:"isFavourite"`
	IsCompleted bool      `json:"isCompleted"`
	Reminder    *Reminder `json:"reminder,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	ModifiedAt  time.Time `json:"modifiedAt"`
}

// Reminder is an optional reminder attached to a note.
type Reminder struct {
	Time   string `json:"time"`
	Repeat string `json:"repeat,omitempty"`
}

// Settings holds the host application's user settings.
type Settings struct {
	Theme                string `json:"theme"`
	AutoSave             bool   `json:"autoSave"`
	AllowNotifications   bool   `json:"allowNotifications"`
	DeleteCompletedTasks bool   `json:"deleteCompletedTasks"`
}

// SettingsPatch is a partial settings update. Nil fields are left untouched.
type SettingsPatch struct {
	Theme                *string `json:"theme,omitempty"`
	AutoSave             *bool   `json:"autoSave,omitempty"`
	AllowNotifications   *bool   `json:"allowNotifications,omitempty"`
	DeleteCompletedTasks *bool   `json:"deleteCompletedTasks,omitempty"`
}

// Apply overlays the patch onto s, touching only the fields that are set.
func (p SettingsPatch) Apply(s *Settings) {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.AutoSave != nil {
		s.AutoSave = *p.AutoSave
	}
	if p.AllowNotifications != nil {
		s.AllowNotifications = *p.AllowNotifications
	}
	if p.DeleteCompletedTasks != nil {
		s.DeleteCompletedTasks = *p.DeleteCompletedTasks
	}
}

// Filter selects a subset of notes by status.
type Filter string

const (
	FilterAll          Filter = "all"
	FilterPinned       Filter = "pinned"
	FilterFavourite    Filter = "favourite"
	FilterCompleted    Filter = "completed"
	FilterPending      Filter = "pending"
	FilterWithReminder Filter = "with-reminder"
)

// ParseFilter maps a filter string to a Filter, defaulting to FilterAll for
// empty input. Unknown values are reported so the model can correct itself.
func ParseFilter(s string) (Filter, bool) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, true
	case FilterPinned, FilterFavourite, FilterCompleted, FilterPending, FilterWithReminder:
		return Filter(s), true
	}
	return FilterAll, false
}

// Matches reports whether the note passes the filter.
func (f Filter) Matches(n *Note) bool {
	switch f {
	case FilterPinned:
		return n.IsPinned
	case FilterFavourite:
		return n.IsFavourite
	case FilterCompleted:
		return n.IsCompleted
	case FilterPending:
		return !n.IsCompleted
	case FilterWithReminder:
		return n.Reminder != nil
	default:
		return true
	}
}

// Counts aggregates note statistics for status reporting.
type Counts struct {
	Total        int `json:"total"`
	Pinned       int `json:"pinned"`
	Favourite    int `json:"favourite"`
	Completed    int `json:"completed"`
	Pending      int `json:"pending"`
	WithReminder int `json:"withReminder"`
}

// CountNotes tallies the given notes into a Counts aggregate.
func CountNotes(all []Note) Counts {
	c := Counts{Total: len(all)}
	for i := range all {
		n := &all[i]
		if n.IsPinned {
			c.Pinned++
		}
		if n.IsFavourite {
			c.Favourite++
		}
		if n.IsCompleted {
			c.Completed++
		} else {
			c.Pending++
		}
		if n.Reminder != nil {
			c.WithReminder++
		}
	}
	return c
}
