// FILE: logpane/src/internal/viewer/draw.go
package viewer

import (
	"logpane/src/internal/core"
)

// Canvas is the drawing context supplied by a renderer. Each control method
// draws the widget with its current value and reports the user's
// interaction with it since the previous frame.
type Canvas interface {
	// LevelToggle draws one level switch and reports whether it was flipped
	LevelToggle(level core.Level, enabled bool) (toggled bool)
	// SearchBox draws the query input and returns the edited text
	SearchBox(query string) (edited string, changed bool)
	// RegexSwitch is only drawn when regex search is allowed
	RegexSwitch(enabled bool) (toggled bool)
	CaseSwitch(sensitive bool) (toggled bool)
	ClearButton() (clicked bool)
	// Scroll reports rows scrolled since the previous frame, positive
	// towards older rows
	Scroll() (delta int)
	// Rows draws the filtered list and status line
	Rows(frame *Frame)
}

// Draw runs one immediate-mode pass: controls are drawn and their
// interactions applied, then the filtered rows are drawn. It keeps no
// per-frame state beyond the viewer's reused buffers.
func (v *State) Draw(c Canvas) {
	v.mu.Lock()
	levels := v.cfg.Levels
	query := v.cfg.Query
	regex := v.cfg.Regex
	allowRegex := v.allowRegex
	caseSensitive := v.cfg.CaseSensitive
	v.mu.Unlock()

	for _, l := range core.Levels {
		if c.LevelToggle(l, levels.Has(l)) {
			v.ToggleLevel(l)
		}
	}

	// Invalid patterns surface through Frame.FilterErr
	if edited, changed := c.SearchBox(query); changed {
		_ = v.SetQuery(edited)
	}
	if allowRegex && c.RegexSwitch(regex) {
		_ = v.SetRegex(!regex)
	}
	if c.CaseSwitch(caseSensitive) {
		_ = v.SetCaseSensitive(!caseSensitive)
	}
	if c.ClearButton() {
		v.Clear()
	}
	if delta := c.Scroll(); delta != 0 {
		v.ScrollBy(delta)
	}

	frame := v.Frame()
	c.Rows(&frame)
}
