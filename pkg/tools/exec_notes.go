package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/maripally-gautam/smartpad-assistant/pkg/notes"
)

const (
	// defaultListLimit bounds listNotes output when the model omits a limit.
	defaultListLimit = 10

	// previewLength is the number of characters of stripped content exposed
	// per search match. Full content is never returned to the model.
	previewLength = 100
)

func (d *Dispatcher) createNote(args map[string]any) Result {
	title, ok := stringArg(args, "title")
	if !ok || title == "" {
		title = "Untitled Note"
	}
	content, _ := stringArg(args, "content")
	isPinned, _ := boolArg(args, "isPinned")
	isFavourite, _ := boolArg(args, "isFavourite")

	now := time.Now()
	id, err := d.host.CreateNote(notes.Note{
		Title:       title,
		Content:     content,
		IsPinned:    isPinned,
		IsFavourite: isFavourite,
		CreatedAt:   now,
		ModifiedAt:  now,
	})
	if err != nil {
		return Failure("Failed to create note: %v", err)
	}

	return Result{
		"success": true,
		"message": fmt.Sprintf("Note %q created", title),
		"noteId":  id,
	}
}

func (d *Dispatcher) editNote(args map[string]any) Result {
	id, ok := stringArg(args, "noteId")
	if !ok || id == "" {
		return Failure("Missing required parameter: noteId")
	}

	existing, found := d.findNote(id)
	if !found {
		return Failure("Note not found: %s", id)
	}

	// Partial update: only the provided fields are applied, everything else
	// is preserved verbatim.
	updated := existing
	if title, ok := stringArg(args, "title"); ok {
		updated.Title = title
	}
	if content, ok := stringArg(args, "content"); ok {
		updated.Content = content
	}
	if pinned, ok := boolArg(args, "isPinned"); ok {
		updated.IsPinned = pinned
	}
	if favourite, ok := boolArg(args, "isFavourite"); ok {
		updated.IsFavourite = favourite
	}
	if completed, ok := boolArg(args, "isCompleted"); ok {
		updated.IsCompleted = completed
	}
	updated.ModifiedAt = time.Now()

	if err := d.host.UpdateNote(updated); err != nil {
		return Failure("Failed to update note: %v", err)
	}

	return Result{
		"success": true,
		"message": fmt.Sprintf("Note %q updated", updated.Title),
	}
}

func (d *Dispatcher) deleteNote(args map[string]any) Result {
	id, ok := stringArg(args, "noteId")
	if !ok || id == "" {
		return Failure("Missing required parameter: noteId")
	}

	existing, found := d.findNote(id)
	if !found {
		return Failure("Note not found: %s", id)
	}

	if err := d.host.DeleteNote(id); err != nil {
		return Failure("Failed to delete note: %v", err)
	}

	return Result{
		"success": true,
		"message": fmt.Sprintf("Note %q deleted", existing.Title),
	}
}

func (d *Dispatcher) searchNotes(args map[string]any) Result {
	query, ok := stringArg(args, "query")
	if !ok || query == "" {
		return Failure("Missing required parameter: query")
	}

	filterName, _ := stringArg(args, "filter")
	filter, valid := notes.ParseFilter(filterName)
	if !valid {
		return Failure("Invalid filter: %s", filterName)
	}

	queryLower := strings.ToLower(query)
	var matches []map[string]any
	for _, n := range d.host.Notes() {
		if !filter.Matches(&n) {
			continue
		}

		stripped := notes.StripHTML(n.Content)
		if !strings.Contains(strings.ToLower(n.Title), queryLower) &&
			!strings.Contains(strings.ToLower(stripped), queryLower) {
			continue
		}

		preview := stripped
		if runes := []rune(preview); len(runes) > previewLength {
			preview = string(runes[:previewLength]) + "..."
		}

		matches = append(matches, map[string]any{
			"noteId":  n.ID,
			"title":   n.Title,
			"preview": preview,
		})
	}

	return Result{
		"success": true,
		"count":   len(matches),
		"results": matches,
	}
}

func (d *Dispatcher) listNotes(args map[string]any) Result {
	filterName, _ := stringArg(args, "filter")
	filter, valid := notes.ParseFilter(filterName)
	if !valid {
		return Failure("Invalid filter: %s", filterName)
	}

	limit, ok := intArg(args, "limit")
	if !ok || limit <= 0 {
		limit = defaultListLimit
	}

	all := d.host.Notes()
	var listed []map[string]any
	for _, n := range all {
		if !filter.Matches(&n) {
			continue
		}
		if len(listed) >= limit {
			break
		}

		listed = append(listed, map[string]any{
			"noteId":      n.ID,
			"title":       n.Title,
			"isPinned":    n.IsPinned,
			"isFavourite": n.IsFavourite,
			"isCompleted": n.IsCompleted,
			"hasReminder": n.Reminder != nil,
			"modifiedAt":  n.ModifiedAt.Format(time.RFC3339),
		})
	}

	return Result{
		"success": true,
		"count":   len(listed),
		"total":   len(all),
		"notes":   listed,
	}
}

func (d *Dispatcher) setReminder(args map[string]any) Result {
	id, ok := stringArg(args, "noteId")
	if !ok || id == "" {
		return Failure("Missing required parameter: noteId")
	}
	reminderTime, ok := stringArg(args, "time")
	if !ok || reminderTime == "" {
		return Failure("Missing required parameter: time")
	}
	repeat, _ := stringArg(args, "repeat")

	existing, found := d.findNote(id)
	if !found {
		return Failure("Note not found: %s", id)
	}

	existing.Reminder = &notes.Reminder{Time: reminderTime, Repeat: repeat}
	existing.ModifiedAt = time.Now()
	if err := d.host.UpdateNote(existing); err != nil {
		return Failure("Failed to set reminder: %v", err)
	}

	return Result{
		"success": true,
		"message": fmt.Sprintf("Reminder set on %q for %s", existing.Title, reminderTime),
	}
}

func (d *Dispatcher) removeReminder(args map[string]any) Result {
	id, ok := stringArg(args, "noteId")
	if !ok || id == "" {
		return Failure("Missing required parameter: noteId")
	}

	existing, found := d.findNote(id)
	if !found {
		return Failure("Note not found: %s", id)
	}

	existing.Reminder = nil
	existing.ModifiedAt = time.Now()
	if err := d.host.UpdateNote(existing); err != nil {
		return Failure("Failed to remove reminder: %v", err)
	}

	return Result{
		"success": true,
		"message": fmt.Sprintf("Reminder removed from %q", existing.Title),
	}
}

func (d *Dispatcher) toggleNoteStatus(args map[string]any) Result {
	id, ok := stringArg(args, "noteId")
	if !ok || id == "" {
		return Failure("Missing required parameter: noteId")
	}
	status, ok := stringArg(args, "status")
	if !ok || status == "" {
		return Failure("Missing required parameter: status")
	}

	existing, found := d.findNote(id)
	if !found {
		return Failure("Note not found: %s", id)
	}

	var value bool
	switch status {
	case "pin":
		existing.IsPinned = !existing.IsPinned
		value = existing.IsPinned
	case "favourite":
		existing.IsFavourite = !existing.IsFavourite
		value = existing.IsFavourite
	case "completed":
		existing.IsCompleted = !existing.IsCompleted
		value = existing.IsCompleted
	default:
		return Failure("Invalid status: %s (expected pin, favourite, or completed)", status)
	}
	existing.ModifiedAt = time.Now()

	if err := d.host.UpdateNote(existing); err != nil {
		return Failure("Failed to toggle status: %v", err)
	}

	return Result{
		"success": true,
		"status":  status,
		"value":   value,
		"message": fmt.Sprintf("Note %q %s is now %t", existing.Title, status, value),
	}
}
