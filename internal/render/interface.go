package render

import "context"

// Renderer turns deck slides into still images. positions selects slides by
// their original 1-based deck position; the returned paths follow the order
// of positions, named by position *within* that kept sequence.
type Renderer interface {
	Render(ctx context.Context, deckPath, outputDir string, positions []int) ([]string, error)
}
