package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/slidecast/internal/logger"
)

type fakeExtractor struct {
	notes []string
	err   error
}

func (f *fakeExtractor) Notes(deckPath string) ([]string, error) {
	return f.notes, f.err
}

// fakeSynthesizer writes the note text itself as the "audio" payload so
// tests can verify pairing by content. failOn makes one note fail; block
// makes the others wait for cancellation, which is how the tests observe
// fail-fast behavior.
type fakeSynthesizer struct {
	failOn string
	block  bool
	delays map[string]time.Duration

	mu    sync.Mutex
	calls []string
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text, outputPath string) error {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.mu.Unlock()

	if text == f.failOn {
		return errors.New("speech service rejected request")
	}
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if d := f.delays[text]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return os.WriteFile(outputPath, []byte(text), 0644)
}

// fakeRenderer writes "slide:<pos>" image payloads. count, when non-zero,
// truncates the returned paths to simulate a branch coming back short.
type fakeRenderer struct {
	fail  bool
	block bool
	count int

	mu           sync.Mutex
	gotPositions []int
}

func (f *fakeRenderer) Render(ctx context.Context, deckPath, outputDir string, positions []int) ([]string, error) {
	f.mu.Lock()
	f.gotPositions = append([]int(nil), positions...)
	f.mu.Unlock()

	if f.fail {
		return nil, errors.New("conversion tool wrote to stderr")
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	paths := make([]string, 0, len(positions))
	for i, pos := range positions {
		p := filepath.Join(outputDir, fmt.Sprintf("page-%d.png", i+1))
		if err := os.WriteFile(p, []byte(fmt.Sprintf("slide:%d", pos)), 0644); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	if f.count > 0 && f.count < len(paths) {
		paths = paths[:f.count]
	}
	return paths, nil
}

// fakeEncoder records the content pairs it muxes, so pairing can be checked
// independent of file naming.
type fakeEncoder struct {
	muxErr error

	mu          sync.Mutex
	muxed       [][2]string
	concatClips []string
	concatOut   string
}

func (f *fakeEncoder) Mux(ctx context.Context, imagePath, audioPath, outputPath string) error {
	if f.muxErr != nil {
		return f.muxErr
	}
	img, err := os.ReadFile(imagePath)
	if err != nil {
		return err
	}
	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.muxed = append(f.muxed, [2]string{string(img), string(audio)})
	f.mu.Unlock()
	return os.WriteFile(outputPath, audio, 0644)
}

func (f *fakeEncoder) Concat(ctx context.Context, clipPaths []string, outputPath string) error {
	f.mu.Lock()
	f.concatClips = append([]string(nil), clipPaths...)
	f.concatOut = outputPath
	f.mu.Unlock()
	return nil
}

func newTestPipeline(ext *fakeExtractor, synth *fakeSynthesizer, rend *fakeRenderer, enc *fakeEncoder) Pipeline {
	return New(ext, synth, rend, enc, logger.New("error"))
}

func TestConvert(t *testing.T) {
	ext := &fakeExtractor{notes: []string{"opening", "", "closing"}}
	// The first note completes after the second: pairing must still follow
	// kept order, not completion order.
	synth := &fakeSynthesizer{delays: map[string]time.Duration{"opening": 30 * time.Millisecond}}
	rend := &fakeRenderer{}
	enc := &fakeEncoder{}

	outputPath := filepath.Join(t.TempDir(), "talk.mp4")
	p := newTestPipeline(ext, synth, rend, enc)

	if err := p.Convert(context.Background(), "talk.pptx", outputPath); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if len(rend.gotPositions) != 2 || rend.gotPositions[0] != 1 || rend.gotPositions[1] != 3 {
		t.Errorf("renderer positions = %v, want [1 3]", rend.gotPositions)
	}

	wantPairs := [][2]string{
		{"slide:1", "opening"},
		{"slide:3", "closing"},
	}
	if len(enc.muxed) != len(wantPairs) {
		t.Fatalf("muxed %d clips, want %d", len(enc.muxed), len(wantPairs))
	}
	for i, want := range wantPairs {
		if enc.muxed[i] != want {
			t.Errorf("muxed[%d] = %v, want %v", i, enc.muxed[i], want)
		}
	}

	if len(enc.concatClips) != 2 {
		t.Fatalf("concatenated %d clips, want 2", len(enc.concatClips))
	}
	for i, clip := range enc.concatClips {
		if filepath.Base(clip) != fmt.Sprintf("video-%d.mp4", i+1) {
			t.Errorf("concat clip %d = %s, want video-%d.mp4", i, clip, i+1)
		}
	}
	if enc.concatOut != outputPath {
		t.Errorf("concat output = %s, want %s", enc.concatOut, outputPath)
	}
}

func TestConvertNoNotes(t *testing.T) {
	ext := &fakeExtractor{notes: []string{"", "", ""}}
	enc := &fakeEncoder{}
	p := newTestPipeline(ext, &fakeSynthesizer{}, &fakeRenderer{}, enc)

	err := p.Convert(context.Background(), "talk.pptx", "out.mp4")
	if !errors.Is(err, ErrNoNotes) {
		t.Errorf("Convert() error = %v, want ErrNoNotes", err)
	}
	if enc.concatOut != "" {
		t.Error("Convert() should not produce output for a deck without notes")
	}
}

func TestConvertExtractionFailure(t *testing.T) {
	ext := &fakeExtractor{err: errors.New("deck is not a zip archive")}
	rend := &fakeRenderer{}
	p := newTestPipeline(ext, &fakeSynthesizer{}, rend, &fakeEncoder{})

	if err := p.Convert(context.Background(), "talk.pptx", "out.mp4"); err == nil {
		t.Fatal("Convert() should fail when the deck cannot be read")
	}
	if rend.gotPositions != nil {
		t.Error("no stage should run after a load failure")
	}
}

func TestConvertSynthesisFailureCancelsSiblings(t *testing.T) {
	ext := &fakeExtractor{notes: []string{"first", "second", "third"}}
	// "second" fails immediately; its siblings and the image branch block
	// until cancelled. Convert returning at all proves cancellation reached
	// them.
	synth := &fakeSynthesizer{failOn: "second", block: true}
	rend := &fakeRenderer{block: true}
	enc := &fakeEncoder{}
	p := newTestPipeline(ext, synth, rend, enc)

	err := p.Convert(context.Background(), "talk.pptx", "out.mp4")
	if err == nil {
		t.Fatal("Convert() should fail when one synthesis call fails")
	}
	if !strings.Contains(err.Error(), "synthesize audio") {
		t.Errorf("Convert() error = %v, want the synthesis stage's failure", err)
	}
	if len(enc.muxed) != 0 || enc.concatOut != "" {
		t.Error("no clip may be produced after a synthesis failure")
	}
}

func TestConvertRenderFailureCancelsAudioBranch(t *testing.T) {
	ext := &fakeExtractor{notes: []string{"first", "second"}}
	synth := &fakeSynthesizer{block: true}
	rend := &fakeRenderer{fail: true}
	p := newTestPipeline(ext, synth, rend, &fakeEncoder{})

	err := p.Convert(context.Background(), "talk.pptx", "out.mp4")
	if err == nil {
		t.Fatal("Convert() should fail when rendering fails")
	}
	if !strings.Contains(err.Error(), "render images") {
		t.Errorf("Convert() error = %v, want the render stage's failure", err)
	}
}

func TestConvertPairingMismatch(t *testing.T) {
	ext := &fakeExtractor{notes: []string{"first", "second"}}
	rend := &fakeRenderer{count: 1}
	p := newTestPipeline(ext, &fakeSynthesizer{}, rend, &fakeEncoder{})

	err := p.Convert(context.Background(), "talk.pptx", "out.mp4")
	if !errors.Is(err, ErrPairingMismatch) {
		t.Errorf("Convert() error = %v, want ErrPairingMismatch", err)
	}
}

func TestConvertRemovesWorkArea(t *testing.T) {
	tests := []struct {
		name string
		rend *fakeRenderer
	}{
		{"on success", &fakeRenderer{}},
		{"on failure", &fakeRenderer{fail: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := &fakeExtractor{notes: []string{"only"}}
			synth := &fakeSynthesizer{}
			p := newTestPipeline(ext, synth, tt.rend, &fakeEncoder{})

			outputPath := filepath.Join(t.TempDir(), "out.mp4")
			_ = p.Convert(context.Background(), "talk.pptx", outputPath)

			if len(tt.rend.gotPositions) == 0 {
				t.Fatal("renderer was never invoked")
			}
			// The renderer saw the work area's images directory; the whole
			// tree must be gone once the run ends.
			matches, err := filepath.Glob(filepath.Join(os.TempDir(), "slidecast-work-*"))
			if err != nil {
				t.Fatal(err)
			}
			if len(matches) != 0 {
				t.Errorf("work area left behind: %v", matches)
			}
		})
	}
}

func TestConvertMuxFailureAborts(t *testing.T) {
	ext := &fakeExtractor{notes: []string{"first", "second"}}
	enc := &fakeEncoder{muxErr: errors.New("encoder exited with status 1")}
	p := newTestPipeline(ext, &fakeSynthesizer{}, &fakeRenderer{}, enc)

	err := p.Convert(context.Background(), "talk.pptx", "out.mp4")
	if err == nil {
		t.Fatal("Convert() should fail when muxing fails")
	}
	if enc.concatOut != "" {
		t.Error("concat must not run after a mux failure")
	}
}
