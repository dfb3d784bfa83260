package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Filter
		valid    bool
	}{
		{name: "empty defaults to all", input: "", expected: FilterAll, valid: true},
		{name: "all", input: "all", expected: FilterAll, valid: true},
		{name: "pinned", input: "pinned", expected: FilterPinned, valid: true},
		{name: "favourite", input: "favourite", expected: FilterFavourite, valid: true},
		{name: "completed", input: "completed", expected: FilterCompleted, valid: true},
		{name: "pending", input: "pending", expected: FilterPending, valid: true},
		{name: "with-reminder", input: "with-reminder", expected: FilterWithReminder, valid: true},
		{name: "unknown is rejected", input: "starred", expected: FilterAll, valid: false},
		{name: "case sensitive", input: "Pinned", expected: FilterAll, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, valid := ParseFilter(tt.input)
			assert.Equal(t, tt.expected, filter)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestFilterMatches(t *testing.T) {
	pinned := Note{IsPinned: true}
	done := Note{IsCompleted: true}
	reminded := Note{Reminder: &Reminder{Time: "2026-09-02T09:00:00Z"}}
	plain := Note{}

	assert.True(t, FilterAll.Matches(&plain))
	assert.True(t, FilterAll.Matches(&done))

	assert.True(t, FilterPinned.Matches(&pinned))
	assert.False(t, FilterPinned.Matches(&plain))

	assert.True(t, FilterCompleted.Matches(&done))
	assert.False(t, FilterCompleted.Matches(&plain))

	assert.True(t, FilterPending.Matches(&plain))
	assert.False(t, FilterPending.Matches(&done))

	assert.True(t, FilterWithReminder.Matches(&reminded))
	assert.False(t, FilterWithReminder.Matches(&plain))
}

func TestCountNotes(t *testing.T) {
	all := []Note{
		{IsPinned: true, IsFavourite: true},
		{IsCompleted: true},
		{Reminder: &Reminder{Time: "soon"}},
		{},
	}

	counts := CountNotes(all)
	assert.Equal(t, 4, counts.Total)
	assert.Equal(t, 1, counts.Pinned)
	assert.Equal(t, 1, counts.Favourite)
	assert.Equal(t, 1, counts.Completed)
	assert.Equal(t, 3, counts.Pending)
	assert.Equal(t, 1, counts.WithReminder)
}

func TestSettingsPatchApply(t *testing.T) {
	settings := Settings{Theme: "light", AutoSave: true, AllowNotifications: true}

	dark := "dark"
	off := false
	patch := SettingsPatch{Theme: &dark, AutoSave: &off}
	patch.Apply(&settings)

	assert.Equal(t, "dark", settings.Theme)
	assert.False(t, settings.AutoSave)
	// Untouched fields survive
	assert.True(t, settings.AllowNotifications)
	assert.False(t, settings.DeleteCompletedTasks)
}

func TestSettingsPatchApplyEmpty(t *testing.T) {
	settings := Settings{Theme: "dark", AutoSave: true}
	SettingsPatch{}.Apply(&settings)
	assert.Equal(t, Settings{Theme: "dark", AutoSave: true}, settings)
}
