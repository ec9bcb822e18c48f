package pipeline

import "strings"

// KeptSlide is a slide that participates in the conversion: it has a
// non-empty speaker note. Position is the slide's original 1-based position
// in the deck; the slide's ordinal within the kept sequence is its index+1,
// and that ordinal is the identity every later stage pairs artifacts by.
type KeptSlide struct {
	Position int
	Note     string
}

// Select filters the per-slide note sequence down to the slides with
// non-empty notes, preserving deck order.
func Select(notes []string) []KeptSlide {
	kept := make([]KeptSlide, 0, len(notes))
	for i, note := range notes {
		if strings.TrimSpace(note) == "" {
			continue
		}
		kept = append(kept, KeptSlide{Position: i + 1, Note: note})
	}
	return kept
}
