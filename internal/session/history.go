package session

import "strings"

const criticalTag = "[CRITICAL] "

// History is the condensed context handed to the intent resolver. It keeps
// the newest events within a character budget and evicts ordinary events
// before critical ones.
type History struct {
	maxChars int
	entries  []historyEntry
}

type historyEntry struct {
	text     string
	critical bool
}

// NewHistory creates a History bounded to maxChars characters.
func NewHistory(maxChars int) *History {
	return &History{maxChars: maxChars}
}

// Add appends an event and prunes the oldest entries past the budget.
func (h *History) Add(event string, critical bool) {
	if critical {
		event = criticalTag + event
	}
	h.entries = append(h.entries, historyEntry{text: event, critical: critical})
	h.prune()
}

// Context returns the retained events, oldest first, one per line.
func (h *History) Context() string {
	lines := make([]string, len(h.entries))
	for i, e := range h.entries {
		lines[i] = e.text
	}
	return strings.Join(lines, "\n")
}

func (h *History) prune() {
	for len(h.entries) > 0 && h.size() > h.maxChars {
		idx := 0
		for i, e := range h.entries {
			if !e.critical {
				idx = i
				break
			}
		}
		h.entries = append(h.entries[:idx], h.entries[idx+1:]...)
	}
}

func (h *History) size() int {
	if len(h.entries) == 0 {
		return 0
	}
	n := len(h.entries) - 1
	for _, e := range h.entries {
		n += len(e.text)
	}
	return n
}
