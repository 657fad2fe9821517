package daemon

import (
	"fmt"

	"github.com/b/tabswitch/pkg/tabs"
)

// StateOf snapshots a switcher for the wire.
func StateOf(sw *tabs.Switcher) StatePayload {
	list := sw.Tabs()
	state := StatePayload{Active: sw.ActiveIndex(), Tabs: make([]TabInfo, 0, len(list))}
	for i, tab := range list {
		state.Tabs = append(state.Tabs, TabInfo{
			Index:  i,
			ID:     tab.ID,
			Title:  tab.Title,
			Active: tab.IsActive(),
		})
	}
	return state
}

// StateMessage wraps StateOf in a message of type t.
func StateMessage(t MessageType, sw *tabs.Switcher) Message {
	msg, err := NewMessage(t, StateOf(sw))
	if err != nil {
		return ErrorMessage(err)
	}
	return msg
}

// Dispatch applies one request to sw and returns the reply: the resulting
// state, or an error message. It must run on the goroutine that owns sw.
func Dispatch(sw *tabs.Switcher, req Message) Message {
	var err error
	switch req.Type {
	case MsgList:
	case MsgNext:
		err = sw.Next()
	case MsgPrev:
		err = sw.Prev()
	case MsgSetup:
		err = sw.Setup()
	case MsgSwitch:
		var p SwitchPayload
		if err = req.Decode(&p); err != nil {
			break
		}
		switch {
		case p.ID != "":
			err = sw.SwitchToID(p.ID)
		case p.Index != nil:
			err = sw.SwitchToIndex(*p.Index)
		default:
			err = fmt.Errorf("switch needs an id or an index")
		}
	case MsgRefresh:
		var p RefreshPayload
		if err = req.Decode(&p); err != nil {
			break
		}
		err = sw.RefreshSync(p.Hint)
	default:
		err = fmt.Errorf("unknown request %q", req.Type)
	}
	if err != nil {
		return ErrorMessage(err)
	}
	return StateMessage(MsgState, sw)
}
