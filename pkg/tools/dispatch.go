// Package tools implements the function dispatch table: the fixed set of
// capabilities the remote model may invoke against the note domain.
//
// Dispatch resolves a model-issued name to a closed callKind and switches
// exhaustively over it, so adding a function without an executor is a compile
// error. The runtime "unknown function" fallback survives only at the
// name-to-kind boundary, where the model is free to invent names.
//
// Executors never return Go errors: domain failures (missing notes, bad
// enum values) are encoded as results with success=false and fed back to the
// model as ordinary turns so it can react conversationally.
package tools

import (
	"fmt"

	"github.com/maripally-gautam/smartpad-assistant/pkg/notes"
)

// Result is the JSON-serializable outcome of one function call. Every result
// contains at least a "success" boolean.
type Result map[string]any

// Failure builds a failed result with a formatted error message.
func Failure(format string, args ...any) Result {
	return Result{
		"success": false,
		"error":   fmt.Sprintf(format, args...),
	}
}

// Success reports whether the result succeeded.
func (r Result) Success() bool {
	ok, _ := r["success"].(bool)
	return ok
}

// callKind enumerates every function the dispatch table implements.
type callKind int

const (
	kindUnknown callKind = iota
	kindCreateNote
	kindEditNote
	kindDeleteNote
	kindSearchNotes
	kindListNotes
	kindSetReminder
	kindRemoveReminder
	kindToggleNoteStatus
	kindChangeTheme
	kindUpdateSettings
	kindGetAppStatus
)

func kindOf(name string) callKind {
	switch name {
	case "createNote":
		return kindCreateNote
	case "editNote":
		return kindEditNote
	case "deleteNote":
		return kindDeleteNote
	case "searchNotes":
		return kindSearchNotes
	case "listNotes":
		return kindListNotes
	case "setReminder":
		return kindSetReminder
	case "removeReminder":
		return kindRemoveReminder
	case "toggleNoteStatus":
		return kindToggleNoteStatus
	case "changeTheme":
		return kindChangeTheme
	case "updateSettings":
		return kindUpdateSettings
	case "getAppStatus":
		return kindGetAppStatus
	}
	return kindUnknown
}

// Dispatcher executes function calls against a host application.
type Dispatcher struct {
	host notes.Host
}

// NewDispatcher creates a dispatcher bound to the given host.
func NewDispatcher(host notes.Host) *Dispatcher {
	return &Dispatcher{host: host}
}

// Dispatch runs the named function with the given arguments. It never panics
// and never returns a Go error; every outcome is a Result. Executors read the
// host directly, so each call observes the effects of earlier calls in the
// same agent loop.
func (d *Dispatcher) Dispatch(name string, args map[string]any) Result {
	if args == nil {
		args = map[string]any{}
	}

	switch kindOf(name) {
	case kindCreateNote:
		return d.createNote(args)
	case kindEditNote:
		return d.editNote(args)
	case kindDeleteNote:
		return d.deleteNote(args)
	case kindSearchNotes:
		return d.searchNotes(args)
	case kindListNotes:
		return d.listNotes(args)
	case kindSetReminder:
		return d.setReminder(args)
	case kindRemoveReminder:
		return d.removeReminder(args)
	case kindToggleNoteStatus:
		return d.toggleNoteStatus(args)
	case kindChangeTheme:
		return d.changeTheme(args)
	case kindUpdateSettings:
		return d.updateSettings(args)
	case kindGetAppStatus:
		return d.getAppStatus()
	case kindUnknown:
		return Result{
			"success": false,
			"error":   fmt.Sprintf("Unknown function: %s", name),
		}
	}

	return Failure("Unknown function: %s", name)
}

// findNote scans the host snapshot for a note by ID.
func (d *Dispatcher) findNote(id string) (notes.Note, bool) {
	for _, n := range d.host.Notes() {
		if n.ID == id {
			return n, true
		}
	}
	return notes.Note{}, false
}

// stringArg extracts a string argument, tolerating absence.
func stringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key].(string)
	return v, ok
}

// boolArg extracts a boolean argument, tolerating absence.
func boolArg(args map[string]any, key string) (bool, bool) {
	v, ok := args[key].(bool)
	return v, ok
}

// intArg extracts an integer argument. JSON numbers decode as float64, so
// both representations are accepted.
func intArg(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}
