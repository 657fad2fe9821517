package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/b/tabswitch/pkg/colors"
	"github.com/b/tabswitch/pkg/config"
)

// runThemes lists the built-in themes, starring the configured one.
func runThemes(w io.Writer, path string) error {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range colors.ListThemes() {
		marker := " "
		if name == cfg.Theme {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%s\n", marker, name, colors.Themes[name].Description)
	}
	return tw.Flush()
}

// runGroup edits the window groups in the config file. A running tabswitch
// picks the change up through its config watcher.
//
//	group list
//	group add <name> <pattern>
func runGroup(w io.Writer, path string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: group list | group add <name> <pattern>")
	}
	cfg, err := config.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return err
	}

	switch args[0] {
	case "list":
		for _, g := range cfg.Groups {
			fmt.Fprintf(w, "%s\t%s\n", g.Name, g.Pattern)
		}
		return nil
	case "add":
		if len(args) != 3 {
			return fmt.Errorf("usage: group add <name> <pattern>")
		}
		if err := config.AddGroup(cfg, config.Group{Name: args[1], Pattern: args[2]}); err != nil {
			return fmt.Errorf("group %q: %w", args[1], err)
		}
		if err := config.Validate(cfg); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
		if err := config.SaveConfig(path, cfg); err != nil {
			return err
		}
		fmt.Fprintf(w, "added group %s\n", args[1])
		return nil
	}
	return fmt.Errorf("unknown group command %q", args[0])
}
