package bridge

import (
	"time"

	"github.com/studiowebux/deskkeys/internal/shortcut"
)

// Frame types exchanged over /ws
const (
	FrameKeydown = "keydown"
	FrameResult  = "result"
	FrameError   = "error"
)

// Config represents the bridge configuration
type Config struct {
	Addr           string   `json:"addr" yaml:"addr"`                                         // Listen address (default: localhost:8765)
	AllowedOrigins []string `json:"allowedOrigins,omitempty" yaml:"allowedOrigins,omitempty"` // Browser origins allowed to connect ("*" for any)
	Logging        bool     `json:"logging" yaml:"logging"`                                   // Keep a log of dispatched keydowns
}

// KeydownFrame is a keydown sent by a page
type KeydownFrame struct {
	Type     string            `json:"type"`
	Key      string            `json:"key"`
	CtrlKey  bool              `json:"ctrlKey"`
	MetaKey  bool              `json:"metaKey"`
	AltKey   bool              `json:"altKey"`
	ShiftKey bool              `json:"shiftKey"`
	Target   *shortcut.Element `json:"target,omitempty"`
}

// Event converts the frame to a dispatcher event
func (f KeydownFrame) Event() *shortcut.KeyEvent {
	event := &shortcut.KeyEvent{
		Key:   f.Key,
		Ctrl:  f.CtrlKey,
		Meta:  f.MetaKey,
		Alt:   f.AltKey,
		Shift: f.ShiftKey,
	}
	if f.Target != nil {
		event.Target = *f.Target
	}
	return event
}

// ResultFrame tells the page what to do with its keydown
type ResultFrame struct {
	Type            string `json:"type"`
	Combo           string `json:"combo"`
	Handled         bool   `json:"handled"`
	PreventDefault  bool   `json:"preventDefault"`
	StopPropagation bool   `json:"stopPropagation"`
	Action          string `json:"action,omitempty"`
}

// ErrorFrame is sent back for frames that could not be dispatched
type ErrorFrame struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// ListingRow is one entry of GET /shortcuts
type ListingRow struct {
	Combo          string `json:"combo"`
	Display        string `json:"display"`
	Description    string `json:"description"`
	Action         string `json:"action,omitempty"`
	PreventDefault bool   `json:"preventDefault"`
}

// DispatchLog represents a logged keydown
type DispatchLog struct {
	Seq       uint64        `json:"seq"` // increases by one per logged keydown
	Timestamp time.Time     `json:"timestamp"`
	Remote    string        `json:"remote"`
	Combo     string        `json:"combo"`
	TargetTag string        `json:"targetTag"`
	Handled   bool          `json:"handled"`
	Action    string        `json:"action"`
	Duration  time.Duration `json:"duration"`
}
