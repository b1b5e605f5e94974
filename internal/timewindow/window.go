// Package timewindow derives the lottery preference windows from a day's tee
// sheet configuration. Windows are computed on demand and never persisted.
package timewindow

import (
	"fmt"
	"strconv"
	"strings"
)

// Value identifies one of the four fixed lottery windows.
type Value string

const (
	Morning   Value = "MORNING"
	Midday    Value = "MIDDAY"
	Afternoon Value = "AFTERNOON"
	Evening   Value = "EVENING"
)

// order is the fixed sequence windows are generated in.
var order = []Value{Morning, Midday, Afternoon, Evening}

// Values returns the four window identifiers in generation order.
func Values() []Value {
	out := make([]Value, len(order))
	copy(out, order)
	return out
}

// Valid reports whether v is one of the four window identifiers.
func Valid(v Value) bool {
	for _, o := range order {
		if o == v {
			return true
		}
	}
	return false
}

// Window is one contiguous quarter of a regular tee sheet day.
type Window struct {
	Value        Value  `json:"value"`
	StartMinutes int    `json:"startMinutes"` // minutes since midnight, inclusive
	EndMinutes   int    `json:"endMinutes"`   // exclusive, except the last window
	Label        string `json:"label"`
}

// SheetConfig is the slice of the external tee sheet settings this package
// needs. Custom sheets manage their own blocks and opt out of the lottery.
type SheetConfig struct {
	StartTime string
	EndTime   string
	Custom    bool
}

// Calculate splits a regular sheet day into four contiguous windows of equal
// floor width. The remainder minutes go to the last window so the windows tile
// [start, end) exactly. Custom sheets and unparseable configs yield no
// windows; that is a normal outcome, not an error.
func Calculate(cfg SheetConfig) []Window {
	if cfg.Custom {
		return nil
	}
	start, ok := ParseClock(cfg.StartTime)
	if !ok {
		return nil
	}
	end, ok := ParseClock(cfg.EndTime)
	if !ok {
		return nil
	}
	total := end - start
	width := total / len(order)
	if width <= 0 {
		return nil
	}

	windows := make([]Window, 0, len(order))
	for i, v := range order {
		ws := start + i*width
		we := ws + width
		if i == len(order)-1 {
			we = end
		}
		windows = append(windows, Window{
			Value:        v,
			StartMinutes: ws,
			EndMinutes:   we,
			Label:        fmt.Sprintf("%s-%s", formatClock(ws), formatClock(we)),
		})
	}
	return windows
}

// Available reports whether the lottery can run against cfg at all.
func Available(cfg SheetConfig) bool {
	return len(Calculate(cfg)) > 0
}

// Contains reports whether a tee time at the given minute falls inside the
// window. Windows are half-open; the last window also owns its end minute so
// a block starting exactly at closing is still placeable.
func (w Window) Contains(minutes int, last bool) bool {
	if minutes < w.StartMinutes {
		return false
	}
	if last {
		return minutes <= w.EndMinutes
	}
	return minutes < w.EndMinutes
}

// ContainsTime reports whether minutes falls inside the named window of the
// given set.
func ContainsTime(windows []Window, v Value, minutes int) bool {
	for i, w := range windows {
		if w.Value == v {
			return w.Contains(minutes, i == len(windows)-1)
		}
	}
	return false
}

// Locate returns the window of the set that owns the given minute, if any.
func Locate(windows []Window, minutes int) (Window, bool) {
	for i, w := range windows {
		if w.Contains(minutes, i == len(windows)-1) {
			return w, true
		}
	}
	return Window{}, false
}

// ParseClock parses a "HH:MM" (or "H:MM") 24-hour clock string into minutes
// since midnight.
func ParseClock(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// formatClock renders minutes since midnight as a 12-hour label without a
// leading zero, e.g. 480 -> "8:00 AM".
func formatClock(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, suffix)
}
