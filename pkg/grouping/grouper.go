package grouping

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/b/tabswitch/pkg/config"
	"github.com/b/tabswitch/pkg/tmux"
)

type GroupedWindows struct {
	Name    string
	Windows []tmux.Window
}

// GroupWindows assigns every window to exactly one group, in config order.
// An explicit @tabswitch_group naming a configured group wins; otherwise the
// first group whose pattern matches the window name takes it, and anything
// left over lands in "Default". Empty groups are dropped.
func GroupWindows(windows []tmux.Window, groups []config.Group) []GroupedWindows {
	result := make([]*GroupedWindows, 0, len(groups))
	byName := make(map[string]*GroupedWindows, len(groups))
	patterns := make([]*regexp.Regexp, len(groups))

	for i, group := range groups {
		gw := &GroupedWindows{Name: group.Name}
		byName[group.Name] = gw
		result = append(result, gw)
		if re, err := regexp.Compile(group.Pattern); err == nil {
			patterns[i] = re
		}
	}

	for _, win := range windows {
		if gw, ok := byName[win.Group]; ok && win.Group != "" {
			gw.Windows = append(gw.Windows, win)
			continue
		}
		matched := false
		if win.Group == "" {
			for i, group := range groups {
				if group.Name == "Default" || patterns[i] == nil {
					continue
				}
				if patterns[i].MatchString(win.Name) {
					byName[group.Name].Windows = append(byName[group.Name].Windows, win)
					matched = true
					break
				}
			}
		}
		if !matched {
			if def, ok := byName["Default"]; ok {
				def.Windows = append(def.Windows, win)
			}
		}
	}

	var nonEmpty []GroupedWindows
	for _, group := range result {
		if len(group.Windows) == 0 {
			continue
		}
		sort.SliceStable(group.Windows, func(i, j int) bool {
			return group.Windows[i].Index < group.Windows[j].Index
		})
		nonEmpty = append(nonEmpty, *group)
	}
	return nonEmpty
}

// WindowsInGroup returns the windows of one group. An empty name selects
// every window.
func WindowsInGroup(windows []tmux.Window, groups []config.Group, name string) ([]tmux.Window, error) {
	if name == "" {
		out := append([]tmux.Window(nil), windows...)
		sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
		return out, nil
	}
	known := false
	for _, g := range groups {
		if g.Name == name {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %q", config.ErrGroupNotFound, name)
	}
	for _, gw := range GroupWindows(windows, groups) {
		if gw.Name == name {
			return gw.Windows, nil
		}
	}
	return nil, nil
}
