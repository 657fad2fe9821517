package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/b/tabswitch/pkg/daemon"
	"github.com/b/tabswitch/pkg/tabs"
)

// controlMsg carries a socket request onto the bubbletea loop, which owns
// the switcher.
type controlMsg struct {
	req   daemon.Message
	reply chan<- daemon.Message
}

var controlTimeout = 2 * time.Second

// forward is the daemon handler used while the TUI runs.
func forward(send func(tea.Msg), req daemon.Message) daemon.Message {
	reply := make(chan daemon.Message, 1)
	send(controlMsg{req: req, reply: reply})
	select {
	case msg := <-reply:
		return msg
	case <-time.After(controlTimeout):
		return daemon.ErrorMessage(errors.New("timed out waiting for the tab switcher"))
	}
}

// parseCommand turns `ctl` arguments into a request:
//
//	list | next | prev | setup | switch <id|n> | refresh <n>
//
// Numbers given on the command line are 1-based like the tab bar.
func parseCommand(args []string) (daemon.Message, error) {
	if len(args) == 0 {
		return daemon.Message{}, errors.New("usage: tabswitch ctl list|next|prev|setup|switch <id|n>|refresh <n>|watch")
	}
	switch args[0] {
	case "list":
		return daemon.NewMessage(daemon.MsgList, nil)
	case "next":
		return daemon.NewMessage(daemon.MsgNext, nil)
	case "prev":
		return daemon.NewMessage(daemon.MsgPrev, nil)
	case "setup":
		return daemon.NewMessage(daemon.MsgSetup, nil)
	case "switch":
		if len(args) != 2 {
			return daemon.Message{}, errors.New("usage: tabswitch ctl switch <id|n>")
		}
		if n, err := strconv.Atoi(args[1]); err == nil {
			i := n - 1
			return daemon.NewMessage(daemon.MsgSwitch, daemon.SwitchPayload{Index: &i})
		}
		return daemon.NewMessage(daemon.MsgSwitch, daemon.SwitchPayload{ID: args[1]})
	case "refresh":
		if len(args) != 2 {
			return daemon.Message{}, errors.New("usage: tabswitch ctl refresh <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return daemon.Message{}, fmt.Errorf("refresh needs a tab number: %w", err)
		}
		return daemon.NewMessage(daemon.MsgRefresh, daemon.RefreshPayload{Hint: n - 1})
	}
	return daemon.Message{}, fmt.Errorf("unknown command %q", args[0])
}

// runCtl sends one command to a running tabswitch, or follows its switches
// with `watch`.
func runCtl(w io.Writer, socketPath string, args []string) error {
	c, err := daemon.Dial(socketPath)
	if err != nil {
		return err
	}
	defer c.Close()

	if len(args) > 0 && args[0] == "watch" {
		if err := c.Send(daemon.Message{Type: daemon.MsgSubscribe}); err != nil {
			return err
		}
		for {
			msg, err := c.Receive()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if err := printState(w, msg); err != nil {
				return err
			}
			fmt.Fprintln(w)
		}
	}

	req, err := parseCommand(args)
	if err != nil {
		return err
	}
	if req.Type == daemon.MsgSwitch {
		if req, err = resolveSwitch(c, req); err != nil {
			return err
		}
	}
	reply, err := c.Request(req)
	if err != nil {
		return err
	}
	return printState(w, reply)
}

// resolveSwitch turns a switch by name into a switch by ID, accepting a
// title or a near miss of one.
func resolveSwitch(c *daemon.Client, req daemon.Message) (daemon.Message, error) {
	var p daemon.SwitchPayload
	if err := req.Decode(&p); err != nil || p.ID == "" {
		return req, err
	}
	list, err := c.Request(daemon.Message{Type: daemon.MsgList})
	if err != nil {
		return req, err
	}
	var state daemon.StatePayload
	if err := list.Decode(&state); err != nil {
		return req, err
	}
	id, err := resolveTab(state, p.ID)
	if err != nil {
		return req, err
	}
	return daemon.NewMessage(daemon.MsgSwitch, daemon.SwitchPayload{ID: id})
}

// resolveTab finds the tab a user meant: exact ID, then title ignoring case,
// then the single closest ID or title within a third of the query length.
func resolveTab(state daemon.StatePayload, query string) (string, error) {
	for _, tab := range state.Tabs {
		if tab.ID == query {
			return tab.ID, nil
		}
	}
	q := strings.ToLower(query)
	for _, tab := range state.Tabs {
		if strings.ToLower(tab.Title) == q {
			return tab.ID, nil
		}
	}

	limit := max(1, len(q)/3)
	best, bestDist, tie := "", limit+1, false
	for _, tab := range state.Tabs {
		d := min(
			levenshtein.ComputeDistance(q, strings.ToLower(tab.ID)),
			levenshtein.ComputeDistance(q, strings.ToLower(tab.Title)),
		)
		switch {
		case d < bestDist:
			best, bestDist, tie = tab.ID, d, false
		case d == bestDist && tab.ID != best:
			tie = true
		}
	}
	if best == "" {
		return "", fmt.Errorf("no tab matches %q", query)
	}
	if tie {
		return "", fmt.Errorf("%q is ambiguous", query)
	}
	return best, nil
}

func printState(w io.Writer, msg daemon.Message) error {
	var state daemon.StatePayload
	if err := msg.Decode(&state); err != nil {
		return err
	}
	for _, tab := range state.Tabs {
		marker := " "
		if tab.Active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %d %s\n", marker, tab.Index+1, tab.Title)
	}
	return nil
}

// serveControl starts the control socket for a and announces every switch
// to its subscribers.
func serveControl(a *app, session string, send func(tea.Msg)) (*daemon.Server, error) {
	srv := daemon.NewServer(daemon.SocketPath(session), daemon.PidPath(session), a.log.Logger)
	srv.Handler = func(req daemon.Message) daemon.Message { return forward(send, req) }
	if err := srv.Start(); err != nil {
		return nil, err
	}
	unsub := a.bus.Subscribe(func(*tabs.Tab) {
		srv.Broadcast(daemon.StateMessage(daemon.MsgSwitched, a.sw))
	})
	a.onClose(unsub)
	return srv, nil
}
