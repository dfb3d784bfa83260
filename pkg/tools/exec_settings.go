package tools

import (
	"fmt"

	"github.com/maripally-gautam/smartpad-assistant/pkg/notes"
)

func (d *Dispatcher) changeTheme(args map[string]any) Result {
	theme, ok := stringArg(args, "theme")
	if !ok || theme == "" {
		return Failure("Missing required parameter: theme")
	}
	if theme != "light" && theme != "dark" {
		return Failure("Invalid theme: %s (expected light or dark)", theme)
	}

	if err := d.host.UpdateSettings(notes.SettingsPatch{Theme: &theme}); err != nil {
		return Failure("Failed to change theme: %v", err)
	}

	return Result{
		"success": true,
		"message": fmt.Sprintf("Theme changed to %s", theme),
	}
}

func (d *Dispatcher) updateSettings(args map[string]any) Result {
	var patch notes.SettingsPatch
	touched := 0

	if v, ok := boolArg(args, "autoSave"); ok {
		patch.AutoSave = &v
		touched++
	}
	if v, ok := boolArg(args, "allowNotifications"); ok {
		patch.AllowNotifications = &v
		touched++
	}
	if v, ok := boolArg(args, "deleteCompletedTasks"); ok {
		patch.DeleteCompletedTasks = &v
		touched++
	}

	if touched == 0 {
		return Failure("No settings provided: expected at least one of autoSave, allowNotifications, deleteCompletedTasks")
	}

	if err := d.host.UpdateSettings(patch); err != nil {
		return Failure("Failed to update settings: %v", err)
	}

	return Result{
		"success": true,
		"message": fmt.Sprintf("Updated %d setting(s)", touched),
	}
}

func (d *Dispatcher) getAppStatus() Result {
	counts := notes.CountNotes(d.host.Notes())
	settings := d.host.Settings()

	return Result{
		"success": true,
		"counts": map[string]any{
			"total":        counts.Total,
			"pinned":       counts.Pinned,
			"favourite":    counts.Favourite,
			"completed":    counts.Completed,
			"pending":      counts.Pending,
			"withReminder": counts.WithReminder,
		},
		"settings": map[string]any{
			"theme":                settings.Theme,
			"autoSave":             settings.AutoSave,
			"allowNotifications":   settings.AllowNotifications,
			"deleteCompletedTasks": settings.DeleteCompletedTasks,
		},
	}
}
