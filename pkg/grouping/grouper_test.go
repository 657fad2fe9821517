package grouping

import (
	"errors"
	"testing"

	"github.com/b/tabswitch/pkg/config"
	"github.com/b/tabswitch/pkg/tmux"
)

var testGroups = []config.Group{
	{Name: "Work", Pattern: "^work-"},
	{Name: "Ops", Pattern: "^ops-"},
	{Name: "Default", Pattern: ".*"},
}

func TestGroupWindows(t *testing.T) {
	windows := []tmux.Window{
		{Name: "work-api", Index: 2},
		{Name: "ops-db", Index: 1},
		{Name: "notes", Index: 0},
		{Name: "work-web", Index: 0, Group: "Ops"}, // explicit option wins over pattern
	}

	counts := map[string]int{}
	for _, group := range GroupWindows(windows, testGroups) {
		counts[group.Name] = len(group.Windows)
	}

	if counts["Work"] != 1 || counts["Ops"] != 2 || counts["Default"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestGroupWindowsUnknownGroupFallsBackToDefault(t *testing.T) {
	result := GroupWindows([]tmux.Window{{Name: "work-x", Index: 0, Group: "Nope"}}, testGroups)
	if len(result) != 1 || result[0].Name != "Default" {
		t.Fatalf("expected Default only, got %+v", result)
	}
}

func TestWindowsInGroupSortedByIndex(t *testing.T) {
	windows := []tmux.Window{
		{ID: "@9", Name: "ops-b", Index: 5},
		{ID: "@8", Name: "ops-a", Index: 1},
	}
	got, err := WindowsInGroup(windows, testGroups, "Ops")
	if err != nil {
		t.Fatalf("WindowsInGroup: %v", err)
	}
	if len(got) != 2 || got[0].ID != "@8" {
		t.Fatalf("unexpected windows: %+v", got)
	}

	all, err := WindowsInGroup(windows, testGroups, "")
	if err != nil || len(all) != 2 || all[0].Index != 1 {
		t.Fatalf("expected all windows sorted, got %+v (%v)", all, err)
	}

	empty, err := WindowsInGroup(windows, testGroups, "Work")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty group, got %+v (%v)", empty, err)
	}
}

func TestWindowsInGroupUnknown(t *testing.T) {
	_, err := WindowsInGroup(nil, testGroups, "Missing")
	if !errors.Is(err, config.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}
