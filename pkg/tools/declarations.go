package tools

// Declaration describes one callable function to the remote model. The set is
// static and process-wide; descriptions are consumed by the model only.
type Declaration struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// BaseSchema builds the common JSON-schema object for a declaration's
// parameters from its properties and required field names.
func BaseSchema(properties map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func boolProp(description string) map[string]any {
	return map[string]any{"type": "boolean", "description": description}
}

func enumProp(description string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": description, "enum": values}
}

var filterValues = []string{"all", "pinned", "favourite", "completed", "pending", "with-reminder"}

// Declarations returns the full function set sent to the model with every
// request.
func Declarations() []Declaration {
	return []Declaration{
		{
			Name:        "createNote",
			Description: "Create a new note with a title and content. Booleans default to false.",
			Parameters: BaseSchema(map[string]any{
				"title":       stringProp("Title of the note"),
				"content":     stringProp("Body of the note; may be empty"),
				"isPinned":    boolProp("Pin the note to the top of the list"),
				"isFavourite": boolProp("Mark the note as a favourite"),
			}, []string{"title"}),
		},
		{
			Name:        "editNote",
			Description: "Update an existing note. Only the provided fields change; omitted fields keep their current values.",
			Parameters: BaseSchema(map[string]any{
				"noteId":      stringProp("ID of the note to edit"),
				"title":       stringProp("New title"),
				"content":     stringProp("New content"),
				"isPinned":    boolProp("New pinned state"),
				"isFavourite": boolProp("New favourite state"),
				"isCompleted": boolProp("New completed state"),
			}, []string{"noteId"}),
		},
		{
			Name:        "deleteNote",
			Description: "Permanently delete a note by ID.",
			Parameters: BaseSchema(map[string]any{
				"noteId": stringProp("ID of the note to delete"),
			}, []string{"noteId"}),
		},
		{
			Name:        "searchNotes",
			Description: "Search notes by a case-insensitive substring of the title or content. Returns short previews, never full content.",
			Parameters: BaseSchema(map[string]any{
				"query":  stringProp("Text to search for"),
				"filter": enumProp("Restrict matches to a status", filterValues...),
			}, []string{"query"}),
		},
		{
			Name:        "listNotes",
			Description: "List the most recently modified notes with metadata and the total note count.",
			Parameters: BaseSchema(map[string]any{
				"filter": enumProp("Restrict the list to a status", filterValues...),
				"limit":  map[string]any{"type": "integer", "description": "Maximum number of notes to return (default 10)"},
			}, nil),
		},
		{
			Name:        "setReminder",
			Description: "Attach or replace a reminder on a note.",
			Parameters: BaseSchema(map[string]any{
				"noteId": stringProp("ID of the note"),
				"time":   stringProp("When the reminder fires, e.g. an ISO 8601 timestamp"),
				"repeat": enumProp("Repeat cadence", "none", "daily", "weekly", "monthly"),
			}, []string{"noteId", "time"}),
		},
		{
			Name:        "removeReminder",
			Description: "Remove the reminder from a note.",
			Parameters: BaseSchema(map[string]any{
				"noteId": stringProp("ID of the note"),
			}, []string{"noteId"}),
		},
		{
			Name:        "toggleNoteStatus",
			Description: "Flip exactly one status flag on a note and report the new value.",
			Parameters: BaseSchema(map[string]any{
				"noteId": stringProp("ID of the note"),
				"status": enumProp("Which flag to toggle", "pin", "favourite", "completed"),
			}, []string{"noteId", "status"}),
		},
		{
			Name:        "changeTheme",
			Description: "Switch the application theme.",
			Parameters: BaseSchema(map[string]any{
				"theme": enumProp("Theme to apply", "light", "dark"),
			}, []string{"theme"}),
		},
		{
			Name:        "updateSettings",
			Description: "Update application settings. Only the provided keys change.",
			Parameters: BaseSchema(map[string]any{
				"autoSave":             boolProp("Automatically save notes while editing"),
				"allowNotifications":   boolProp("Allow reminder notifications"),
				"deleteCompletedTasks": boolProp("Automatically delete completed tasks"),
			}, nil),
		},
		{
			Name:        "getAppStatus",
			Description: "Report note counts by status and the current settings.",
			Parameters:  BaseSchema(map[string]any{}, nil),
		},
	}
}
