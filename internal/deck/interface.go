package deck

// Extractor reads a slide deck and returns its speaker notes.
type Extractor interface {
	// Notes returns one entry per slide in deck order. Slides without a
	// notes part, or with an empty note body, yield "".
	Notes(deckPath string) ([]string, error)
}
