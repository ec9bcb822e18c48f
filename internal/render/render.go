package render

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/sync/errgroup"
)

// Render converts the deck to a page-per-slide PDF, then rasterizes the
// selected pages concurrently. The conversion step fails on any stderr
// output from the converter, even with a zero exit code; LibreOffice signals
// real problems that way.
func (r *implRenderer) Render(ctx context.Context, deckPath, outputDir string, positions []int) ([]string, error) {
	pdfDir, err := os.MkdirTemp("", "slidecast-pdf-")
	if err != nil {
		return nil, fmt.Errorf("render: create pdf dir: %w", err)
	}
	defer os.RemoveAll(pdfDir)

	if _, err := r.executor.ExecuteStrict(ctx, r.sofficePath,
		"--headless",
		"--invisible",
		"--convert-to", "pdf",
		"--outdir", pdfDir,
		deckPath,
	); err != nil {
		return nil, fmt.Errorf("render: convert deck to pdf: %w", err)
	}

	pdfPath := filepath.Join(pdfDir, deckStem(deckPath)+".pdf")
	r.logger.Info(ctx, "Converted deck to PDF: %s", pdfPath)

	return r.rasterize(ctx, pdfPath, outputDir, positions)
}

func (r *implRenderer) rasterize(ctx context.Context, pdfPath, outputDir string, positions []int) ([]string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("render: open pdf: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	for _, pos := range positions {
		if pos < 1 || pos > pageCount {
			return nil, fmt.Errorf("render: page %d out of range, pdf has %d pages", pos, pageCount)
		}
	}

	paths := make([]string, len(positions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for ordinal, pos := range positions {
		outputPath := filepath.Join(outputDir, fmt.Sprintf("page-%d.png", ordinal+1))
		paths[ordinal] = outputPath

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := r.rasterizePage(doc, pos, outputPath); err != nil {
				return err
			}
			r.logger.Info(gctx, "Rendered slide %d to %s", pos, outputPath)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return paths, nil
}

func (r *implRenderer) rasterizePage(doc *fitz.Document, pos int, outputPath string) error {
	// rasterizePage is called from multiple workers; fitz.Document
	// serializes page access internally.
	img, err := doc.ImageDPI(pos-1, float64(r.dpi))
	if err != nil {
		return fmt.Errorf("rasterize page %d: %w", pos, err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encode image for page %d: %w", pos, err)
	}
	return nil
}

func deckStem(deckPath string) string {
	base := filepath.Base(deckPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
